package app

import (
	"fmt"
	"log/slog"
	"strings"

	"bandbook/internal/util"
	"bandbook/pkg/auth"
	"bandbook/pkg/domain"
)

// SignUp registers a new user and signs them in. Emails are matched
// exactly (case-sensitive); a duplicate yields ErrEmailAlreadyRegistered.
// The password is bcrypt-hashed before storage.
func (a *App) SignUp(email, password, displayName string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, ErrEmailAndPasswordRequired
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, ErrEmailAlreadyRegistered
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           util.NewID(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	if err := a.startSession(user.ID); err != nil {
		return domain.User{}, err
	}
	slog.Debug("user signed up", "userId", user.ID)
	return user, nil
}

// SignIn resolves the email to a user and signs them in. Unknown emails
// yield ErrUserNotFound. Credentials are verified unless password
// verification was disabled in config for legacy compatibility.
func (a *App) SignIn(email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if a.verifyPasswords && !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := a.startSession(user.ID); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// CurrentUser returns the signed-in user, if any. It never fails; a stale
// or missing session reads as signed-out.
func (a *App) CurrentUser() (domain.User, bool) {
	a.mu.Lock()
	token := a.sessionToken
	a.mu.Unlock()
	if token == "" {
		return domain.User{}, false
	}
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// UpdateUser upserts the user by ID. The current-user view follows
// automatically because the session tracks the ID, not the record.
func (a *App) UpdateUser(user domain.User) (domain.User, error) {
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// SignOut clears the session. Calling it while signed out is a no-op.
func (a *App) SignOut() error {
	a.mu.Lock()
	token := a.sessionToken
	a.sessionToken = ""
	a.mu.Unlock()
	if token == "" {
		return nil
	}
	if err := a.sessions.DeleteSession(token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (a *App) startSession(userID string) error {
	token, err := a.sessions.NewSession(userID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	a.mu.Lock()
	a.sessionToken = token
	a.mu.Unlock()
	return nil
}
