package auth

import (
	"testing"
	"time"
)

func TestBuildAndParseJWT(t *testing.T) {
	secret := []byte("test-secret-min-32-chars!!")
	userID := "user-123"
	tok, err := BuildJWT(secret, userID, RoleTherapist, false, time.Hour)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}
	claims, err := ParseJWT(secret, tok)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != userID || claims.Role != RoleTherapist {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.MustChangePassword {
		t.Fatal("must_change_password should be false")
	}
}

func TestJWTMustChangePassword(t *testing.T) {
	secret := []byte("test-secret-min-32-chars!!")
	tok, err := BuildJWT(secret, "user-456", RoleAdmin, true, 15*time.Minute)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}
	claims, err := ParseJWT(secret, tok)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if !claims.MustChangePassword || claims.Role != RoleAdmin {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	tok, err := BuildJWT([]byte("secret-one-min-32-chars!!!!!!!!!"), "u", RoleTherapist, false, time.Hour)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}
	if _, err := ParseJWT([]byte("secret-two-min-32-chars!!!!!!!!!"), tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}
