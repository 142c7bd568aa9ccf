package types

import "testing"

func TestNormalizeUserAliasPriority(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"canonical wins", map[string]any{"email": "a@x.io", "Email": "b@x.io", "email_address": "c@x.io"}, "a@x.io"},
		{"capitalized fallback", map[string]any{"Email": "b@x.io", "email_address": "c@x.io"}, "b@x.io"},
		{"legacy fallback", map[string]any{"email_address": "c@x.io"}, "c@x.io"},
		{"empty string skipped", map[string]any{"email": "   ", "Email": "b@x.io"}, "b@x.io"},
		{"nothing", map[string]any{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeUser(tc.raw).Email; got != tc.want {
				t.Fatalf("email = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeUserFullProfile(t *testing.T) {
	raw := map[string]any{
		"id":    float64(42),
		"fname": "Ada",
		"lname": "Lovelace",
		"email": "ada@brainink.io",
	}
	u := NormalizeUser(raw)
	if u.ID != 42 {
		t.Fatalf("id = %d", u.ID)
	}
	if u.FirstName != "Ada" || u.LastName != "Lovelace" {
		t.Fatalf("name = %q %q", u.FirstName, u.LastName)
	}
}
