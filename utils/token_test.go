package utils

import (
	"testing"

	"ghazaltech-backend/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("user-123", models.RolePartner)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("user id = %q", claims.UserID)
	}
	if claims.Role != models.RolePartner {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestParseSessionTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken("user-123", models.RoleClient)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := ParseSessionToken(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestMagicTokenHashOnly(t *testing.T) {
	raw, hash, err := NewMagicToken()
	if err != nil {
		t.Fatalf("new magic token: %v", err)
	}
	if raw == hash {
		t.Fatal("raw token must differ from its hash")
	}
	if HashToken(raw) != hash {
		t.Fatal("hash must be reproducible from the raw token")
	}

	raw2, _, err := NewMagicToken()
	if err != nil {
		t.Fatalf("new magic token: %v", err)
	}
	if raw == raw2 {
		t.Fatal("tokens must be unique")
	}
}
