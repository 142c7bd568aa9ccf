package envutil

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  value  ")
	if got := String("ENVUTIL_TEST_STR", "def"); got != "value" {
		t.Fatalf("got %q", got)
	}
	if got := String("ENVUTIL_TEST_STR_UNSET", "def"); got != "def" {
		t.Fatalf("got %q, want default", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("got %d, want default on parse failure", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"1": true, "true": true, "YES": true, "0": false, "off": false}
	for raw, want := range cases {
		t.Setenv("ENVUTIL_TEST_BOOL", raw)
		if got := Bool("ENVUTIL_TEST_BOOL", !want); got != want {
			t.Fatalf("Bool(%q) = %v, want %v", raw, got, want)
		}
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	if got := Bool("ENVUTIL_TEST_BOOL", true); got != true {
		t.Fatal("unparseable value must return the default")
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_SECS", "30")
	if got := Seconds("ENVUTIL_TEST_SECS", 5*time.Second); got != 30*time.Second {
		t.Fatalf("got %v", got)
	}
	t.Setenv("ENVUTIL_TEST_SECS", "0")
	if got := Seconds("ENVUTIL_TEST_SECS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("got %v, want default for non-positive", got)
	}
	if got := Seconds("ENVUTIL_TEST_SECS_UNSET", 5*time.Second); got != 5*time.Second {
		t.Fatalf("got %v, want default when unset", got)
	}
}
