package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signToken returns an HS256 token for sub that expires after ttl. A
// negative ttl yields an already expired token.
func signToken(t *testing.T, sub string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}).SignedString([]byte("key"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestTokenExpiry(t *testing.T) {
	signed := signToken(t, "sub", time.Hour)

	exp, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if d := time.Until(exp); d < 59*time.Minute || d > time.Hour {
		t.Errorf("unexpected expiry %s", exp)
	}
}

func TestTokenExpiry_ExpiredTokenIsStillParsed(t *testing.T) {
	signed := signToken(t, "sub", -time.Minute)

	exp, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !exp.Before(time.Now()) {
		t.Errorf("expected expiry in the past, got %s", exp)
	}
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("key"))
	if err != nil {
		t.Fatal(err)
	}

	exp, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !exp.IsZero() {
		t.Errorf("expected zero time, got %s", exp)
	}
}

func TestTokenExpiry_Malformed(t *testing.T) {
	if _, err := TokenExpiry("not.a.token"); err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}
