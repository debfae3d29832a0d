package web

import (
	"testing"
	"time"
)

func TestSessionIssueAndVerify(t *testing.T) {
	t.Parallel()

	manager := newSessionManager("secret", "editor", "editor-secret")
	token, err := manager.issue("editor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := manager.verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "editor" {
		t.Fatalf("subject = %q, want editor", subject)
	}
}

func TestSessionVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	manager := newSessionManager("secret", "editor", "editor-secret")
	manager.now = func() time.Time { return time.Now().Add(-2 * sessionTTL) }
	token, err := manager.issue("editor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	manager.now = time.Now
	if _, err := manager.verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSessionVerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	issuer := newSessionManager("secret-a", "editor", "editor-secret")
	token, err := issuer.issue("editor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier := newSessionManager("secret-b", "editor", "editor-secret")
	if _, err := verifier.verify(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestSessionVerifyRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	manager := newSessionManager("secret", "editor", "editor-secret")
	if _, err := manager.verify("  "); err == nil {
		t.Fatal("expected empty token to be rejected")
	}
}

func TestAuthenticateChecksBothCredentials(t *testing.T) {
	t.Parallel()

	manager := newSessionManager("secret", "editor", "editor-secret")
	if err := manager.authenticate("editor", "editor-secret"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := manager.authenticate("editor", "wrong"); err == nil {
		t.Fatal("expected wrong secret to be rejected")
	}
	if err := manager.authenticate("intruder", "editor-secret"); err == nil {
		t.Fatal("expected wrong editor id to be rejected")
	}
}

func TestAuthenticateRefusesWhenUnconfigured(t *testing.T) {
	t.Parallel()

	manager := newSessionManager("secret", "", "")
	if err := manager.authenticate("", ""); err == nil {
		t.Fatal("expected sign-in to be disabled without configured credentials")
	}
}
