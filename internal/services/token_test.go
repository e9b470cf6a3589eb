package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", "akademus-api", time.Hour)
	userID := uuid.New()

	tok, err := ti.Issue(userID, "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	gotID, claims, err := ti.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotID != userID {
		t.Fatalf("Parse: subject mismatch: %s != %s", gotID, userID)
	}
	if claims.Email != "a@x.com" || claims.Issuer != "akademus-api" {
		t.Fatalf("Parse: unexpected claims %+v", claims)
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != time.Hour {
		t.Fatalf("Parse: expected 1h lifetime, got %v", ttl)
	}
}

func TestTokenRejections(t *testing.T) {
	ti := NewTokenIssuer("secret", "akademus-api", time.Hour)
	valid, err := ti.Issue(uuid.New(), "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	expired := NewTokenIssuer("secret", "akademus-api", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, err := expired.Issue(uuid.New(), "a@x.com")
	if err != nil {
		t.Fatalf("Issue (expired): %v", err)
	}

	otherKey, err := NewTokenIssuer("other", "akademus-api", time.Hour).Issue(uuid.New(), "a@x.com")
	if err != nil {
		t.Fatalf("Issue (other key): %v", err)
	}

	otherIssuer, err := NewTokenIssuer("secret", "someone-else", time.Hour).Issue(uuid.New(), "a@x.com")
	if err != nil {
		t.Fatalf("Issue (other issuer): %v", err)
	}

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "akademus-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign bad subject: %v", err)
	}

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "akademus-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := map[string]string{
		"garbage":      "not-a-token",
		"truncated":    valid[:len(valid)-4],
		"tampered":     strings.Replace(valid, ".", ".x", 1),
		"expired":      expiredTok,
		"other key":    otherKey,
		"other issuer": otherIssuer,
		"bad subject":  badSubject,
		"alg none":     noneAlg,
	}
	for name, tok := range cases {
		if _, _, err := ti.Parse(tok); err == nil {
			t.Fatalf("Parse(%s): expected error", name)
		}
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)
	hashed, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hashed == "hunter22" {
		t.Fatalf("Hash: password stored in clear")
	}
	if !h.Compare(hashed, "hunter22") {
		t.Fatalf("Compare: expected match")
	}
	if h.Compare(hashed, "hunter23") {
		t.Fatalf("Compare: expected mismatch")
	}
	if NewPasswordHasher(0).cost != DefaultBcryptCost {
		t.Fatalf("NewPasswordHasher: expected default cost for out-of-range input")
	}
}
