package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	redactOnce.Do(func() { redactionEnabled = true })

	jwtLike := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	out := sanitizeKVs([]interface{}{
		"password", "hunter22",
		"Authorization", "Bearer abc",
		"user_id", "3b0f0a44-2b2e-4d8b-9a8f-8f0e3bc8d0a1",
		"note", jwtLike,
		"status", 200,
		"dangling",
	})

	if len(out) != 11 {
		t.Fatalf("sanitizeKVs: expected 11 entries, got %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("password: expected redaction, got %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("authorization: expected redaction, got %v", out[3])
	}
	hashed, ok := out[5].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") || len(hashed) != len("hash:")+12 {
		t.Fatalf("user_id: expected short hash, got %v", out[5])
	}
	if out[7] != "[REDACTED]" {
		t.Fatalf("jwt value: expected redaction, got %v", out[7])
	}
	if out[9] != 200 {
		t.Fatalf("status: expected passthrough, got %v", out[9])
	}
	if out[10] != "dangling" {
		t.Fatalf("dangling key: expected passthrough, got %v", out[10])
	}
}

func TestHashValueStable(t *testing.T) {
	a := hashValue("same")
	b := hashValue("same")
	if a != b {
		t.Fatalf("hashValue: expected stable output, got %q and %q", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("hashValue: expected empty output for empty input")
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.With("component", "test").Info("hello", "k", "v")
	}
	Nop().Error("discarded")
}
