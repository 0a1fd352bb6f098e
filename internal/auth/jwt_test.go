package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", 42, "merchant", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := VerifyToken("secret", token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	id, ok := UserIDFromClaims(claims)
	if !ok || id != 42 {
		t.Fatalf("user_id = %v, want 42", claims["user_id"])
	}
	if claims["role"] != "merchant" {
		t.Fatalf("role = %v, want merchant", claims["role"])
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", 1, "customer", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := VerifyToken("other-secret", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	if _, err := VerifyToken("secret", "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
