package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	email, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("Verify() email = %q, want %q", email, "a@x.com")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-one", time.Hour)
	other := NewTokenManager("secret-two", time.Hour)

	token, err := tm.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("Verify() with wrong secret should fail")
	}
}

func TestVerify_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Error("Verify() of expired token should fail")
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.Verify("not-a-token"); err == nil {
		t.Error("Verify() of malformed token should fail")
	}
}
