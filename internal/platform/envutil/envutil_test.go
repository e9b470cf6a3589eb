package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		name  string
		value string
		secs  string
		want  time.Duration
	}{
		{"unset uses default", "", "", 5 * time.Second},
		{"go duration", "24h", "", 24 * time.Hour},
		{"bare integer is seconds", "90", "", 90 * time.Second},
		{"days", "7d", "", 7 * 24 * time.Hour},
		{"bad days uses default", "xd", "", 5 * time.Second},
		{"seconds fallback", "", "30", 30 * time.Second},
		{"garbage uses default", "soon", "", 5 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_ENVUTIL_TIMEOUT", tc.value)
			t.Setenv("TEST_ENVUTIL_TIMEOUT_SECONDS", tc.secs)
			if got := Duration("TEST_ENVUTIL_TIMEOUT", 5*time.Second); got != tc.want {
				t.Fatalf("Duration: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestScalars(t *testing.T) {
	t.Setenv("TEST_ENVUTIL_INT", "42")
	t.Setenv("TEST_ENVUTIL_BAD_INT", "x")
	t.Setenv("TEST_ENVUTIL_BOOL", "Yes")
	t.Setenv("TEST_ENVUTIL_STR", "  value  ")
	t.Setenv("TEST_ENVUTIL_FLOAT", "0.25")

	if got := Int("TEST_ENVUTIL_INT", 1); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("TEST_ENVUTIL_BAD_INT", 7); got != 7 {
		t.Fatalf("Int (bad): got %d", got)
	}
	if !Bool("TEST_ENVUTIL_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if Bool("TEST_ENVUTIL_MISSING_BOOL", false) {
		t.Fatalf("Bool (missing): expected default false")
	}
	if got := String("TEST_ENVUTIL_STR", "def"); got != "value" {
		t.Fatalf("String: got %q", got)
	}
	if got := Float("TEST_ENVUTIL_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: got %v", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("TEST_ENVUTIL_LIST", "http://a, ,http://b")
	got := List("TEST_ENVUTIL_LIST", nil)
	want := []string{"http://a", "http://b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List: got %v want %v", got, want)
	}
	def := []string{"x"}
	if got := List("TEST_ENVUTIL_LIST_MISSING", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("List (missing): got %v", got)
	}
}
