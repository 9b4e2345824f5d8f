package app

import "errors"

var (
	ErrEmailAndPasswordRequired = errors.New("email and password required")
	// ErrEmailAlreadyRegistered is returned on signup when another account
	// already uses the email (exact, case-sensitive match).
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	// ErrInvalidCredentials is shown to end users; it deliberately does not
	// say whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrBandNotFound = errors.New("band not found")
	// ErrNotBandMember is returned when the inviter does not belong to the
	// band they are inviting to.
	ErrNotBandMember        = errors.New("inviter is not a member of the band")
	ErrInviteAlreadyPending = errors.New("a pending invite for this email already exists")
	ErrInviteNotFound       = errors.New("invite not found")
	// ErrInviteUserNotFound is returned when no account exists for the
	// invited email at response time.
	ErrInviteUserNotFound = errors.New("no user registered for invited email")
	// ErrInviteAlreadyAnswered is returned when responding to an invite that
	// is no longer pending.
	ErrInviteAlreadyAnswered = errors.New("invite already answered")
)
