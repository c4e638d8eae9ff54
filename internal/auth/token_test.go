package auth_test

import (
	"testing"
	"time"

	"event-manager/internal/auth"
)

func TestIssueAndParseToken(t *testing.T) {
	token, jti, err := auth.IssueToken("test-secret", 42, auth.RoleOrganizer, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	if jti == "" {
		t.Fatal("Expected a non-empty JTI")
	}

	claims, err := auth.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("Failed to parse subject: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user id 42, got %d", userID)
	}
	if claims.Role != auth.RoleOrganizer {
		t.Errorf("Expected role %q, got %q", auth.RoleOrganizer, claims.Role)
	}
	if claims.ID != jti {
		t.Errorf("Expected JTI %q in claims, got %q", jti, claims.ID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := auth.IssueToken("test-secret", 1, auth.RoleAttendee, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if _, err := auth.ParseToken("other-secret", token); err == nil {
		t.Error("Expected parse with wrong secret to fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := auth.IssueToken("test-secret", 1, auth.RoleAttendee, -time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if _, err := auth.ParseToken("test-secret", token); err == nil {
		t.Error("Expected expired token to fail validation")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := auth.ParseToken("test-secret", "not-a-token"); err == nil {
		t.Error("Expected garbage token to fail validation")
	}
}

func TestUniqueJTIs(t *testing.T) {
	_, first, err := auth.IssueToken("test-secret", 1, auth.RoleAttendee, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	_, second, err := auth.IssueToken("test-secret", 1, auth.RoleAttendee, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	if first == second {
		t.Error("Expected each issued token to carry a fresh JTI")
	}
}
