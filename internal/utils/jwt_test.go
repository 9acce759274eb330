package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "utils-test-secret"

func TestNewAccessToken_CarriesClaims(t *testing.T) {
	at, err := NewAccessToken(testSecret, 42, "student@example.com", "STUDENT", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if !at.Exp.After(time.Now().UTC()) {
		t.Error("expiry is not in the future")
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["email"] != "student@example.com" {
		t.Errorf("email claim: got %v", claims["email"])
	}
	if claims["role"] != "STUDENT" {
		t.Errorf("role claim: got %v", claims["role"])
	}
}

func TestHashRefreshRaw_Deterministic(t *testing.T) {
	a := HashRefreshRaw("token-value")
	b := HashRefreshRaw("token-value")
	if a != b {
		t.Error("same input hashed differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length: got %d, want 64 hex chars", len(a))
	}
	if a == HashRefreshRaw("other-value") {
		t.Error("different inputs collided")
	}
}

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("token length: got %d, want 64 hex chars", len(tok))
	}
	other, _ := NewSessionToken()
	if tok == other {
		t.Error("two session tokens collided")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
