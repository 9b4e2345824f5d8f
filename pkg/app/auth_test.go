package app

import (
	"errors"
	"testing"

	"bandbook/pkg/domain"
)

func TestSignUpThenSignInRoundTrip(t *testing.T) {
	a := newTestApp(t)

	created, err := a.SignUp("ann@example.com", "s3cret", "Ann")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if created.Role != domain.RoleMember || created.BandID != "" {
		t.Fatalf("new user should be a bandless member, got %+v", created)
	}
	if err := a.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	signedIn, err := a.SignIn("ann@example.com", "s3cret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if signedIn.ID != created.ID {
		t.Fatalf("sign in resolved id %q, want %q", signedIn.ID, created.ID)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.SignUp("ann@example.com", "pw", "Ann"); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	if _, err := a.SignUp("ann@example.com", "pw2", "Other"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	// Exact matching is case-sensitive, so this is a different address.
	if _, err := a.SignUp("Ann@example.com", "pw", "Ann"); err != nil {
		t.Fatalf("case-different email should register: %v", err)
	}
}

func TestSignUpRequiresEmailAndPassword(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.SignUp("", "pw", "Ann"); !errors.Is(err, ErrEmailAndPasswordRequired) {
		t.Fatalf("expected ErrEmailAndPasswordRequired, got %v", err)
	}
	if _, err := a.SignUp("ann@example.com", "", "Ann"); !errors.Is(err, ErrEmailAndPasswordRequired) {
		t.Fatalf("expected ErrEmailAndPasswordRequired, got %v", err)
	}
}

func TestSignInVerifiesPassword(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.SignUp("ann@example.com", "right", "Ann"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := a.SignIn("ann@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.SignIn("nobody@example.com", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSignInLegacyModeSkipsPasswordCheck(t *testing.T) {
	verify := false
	a, err := New(Config{VerifyPasswords: &verify})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	created, err := a.SignUp("ann@example.com", "right", "Ann")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	user, err := a.SignIn("ann@example.com", "anything")
	if err != nil {
		t.Fatalf("legacy sign in: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("sign in resolved id %q, want %q", user.ID, created.ID)
	}
}

func TestCurrentUserFollowsSession(t *testing.T) {
	a := newTestApp(t)
	if _, ok := a.CurrentUser(); ok {
		t.Fatalf("expected no current user before sign up")
	}

	created, _ := a.SignUp("ann@example.com", "pw", "Ann")
	current, ok := a.CurrentUser()
	if !ok || current.ID != created.ID {
		t.Fatalf("current user = %+v ok=%v, want %q", current, ok, created.ID)
	}

	if err := a.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, ok := a.CurrentUser(); ok {
		t.Fatalf("expected no current user after sign out")
	}
	// Signing out again is idempotent.
	if err := a.SignOut(); err != nil {
		t.Fatalf("second sign out: %v", err)
	}
}

func TestUpdateUserRefreshesCurrentView(t *testing.T) {
	a := newTestApp(t)
	created, _ := a.SignUp("ann@example.com", "pw", "Ann")

	created.DisplayName = "Annie"
	if _, err := a.UpdateUser(created); err != nil {
		t.Fatalf("update user: %v", err)
	}
	current, ok := a.CurrentUser()
	if !ok || current.DisplayName != "Annie" {
		t.Fatalf("current user not refreshed: %+v ok=%v", current, ok)
	}
}
