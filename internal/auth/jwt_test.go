package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	token, exp, err := Issue(42, "jdoe", RoleManager, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("expiry too soon: %v", exp)
	}

	claims, err := Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.ID != 42 {
		t.Errorf("expected id 42, got %d", claims.ID)
	}
	if claims.Username != "jdoe" {
		t.Errorf("expected username jdoe, got %q", claims.Username)
	}
	if claims.Role != RoleManager {
		t.Errorf("expected role manager, got %q", claims.Role)
	}
}

func TestParseWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := Issue(1, "admin", RoleAdmin, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := Parse(token, "secret-b"); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseExpiredToken(t *testing.T) {
	t.Parallel()

	token, _, err := Issue(1, "admin", RoleAdmin, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := Parse(token, "test-secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseGarbage(t *testing.T) {
	t.Parallel()

	if _, err := Parse("not-a-token", "test-secret"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
