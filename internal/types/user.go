package types

import "strings"

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

// userAliases maps each canonical profile field to the backend field names
// that have carried it across schema generations, in priority order. The
// first defined (non-empty) candidate wins.
var userAliases = map[string][]string{
	"username":   {"username", "Username", "user_name"},
	"email":      {"email", "Email", "email_address"},
	"first_name": {"first_name", "fname", "firstName", "FirstName"},
	"last_name":  {"last_name", "lname", "lastName", "LastName"},
	"avatar_url": {"avatar_url", "avatar", "profile_image"},
}

// NormalizeUser resolves a raw profile object onto the canonical field set
// using the alias tables.
func NormalizeUser(raw map[string]any) User {
	u := User{
		Username:  aliasString(raw, "username"),
		Email:     aliasString(raw, "email"),
		FirstName: aliasString(raw, "first_name"),
		LastName:  aliasString(raw, "last_name"),
		AvatarURL: aliasString(raw, "avatar_url"),
	}
	switch id := raw["id"].(type) {
	case float64:
		u.ID = int(id)
	case int:
		u.ID = id
	}
	return u
}

func aliasString(raw map[string]any, canonical string) string {
	for _, key := range userAliases[canonical] {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
