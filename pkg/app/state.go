package app

import (
	"sync"

	"bandbook/pkg/domain"
)

// State is a minimal observable value container for platform view state.
// Platform layers subscribe to re-render on changes; there is no further
// event machinery in the core.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewState builds a container holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers a change callback and returns a cancel func.
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// AuthState is the platform-facing sign-in/sign-up facade. It mirrors the
// use-case results into observable state the UI binds to.
type AuthState struct {
	app *App

	CurrentUser *State[*domain.User]
	Status      *State[string]
	Loading     *State[bool]
}

// NewAuthState builds the facade and seeds CurrentUser from the session.
func NewAuthState(app *App) *AuthState {
	s := &AuthState{
		app:         app,
		CurrentUser: NewState[*domain.User](nil),
		Status:      NewState(""),
		Loading:     NewState(false),
	}
	if user, ok := app.CurrentUser(); ok {
		s.CurrentUser.Set(&user)
	}
	return s
}

// SignIn drives App.SignIn and reflects the outcome into state.
func (s *AuthState) SignIn(email, password string) {
	s.Loading.Set(true)
	user, err := s.app.SignIn(email, password)
	if err != nil {
		s.Status.Set(err.Error())
	} else {
		s.CurrentUser.Set(&user)
		s.Status.Set("")
	}
	s.Loading.Set(false)
}

// SignUp registers the user and optionally creates their band in the same
// flow, mirroring the sign-up screen.
func (s *AuthState) SignUp(email, password, displayName, bandName string) *domain.Band {
	s.Loading.Set(true)
	defer s.Loading.Set(false)
	user, err := s.app.SignUp(email, password, displayName)
	if err != nil {
		s.Status.Set(err.Error())
		return nil
	}
	s.CurrentUser.Set(&user)
	if bandName == "" {
		s.Status.Set("Signed up successfully.")
		return nil
	}
	band, err := s.app.CreateBand(bandName, user.ID)
	if err != nil {
		s.Status.Set(err.Error())
		return nil
	}
	s.Status.Set("Created account and band!")
	return &band
}

// SignOut clears the session and the observable user.
func (s *AuthState) SignOut() {
	_ = s.app.SignOut()
	s.CurrentUser.Set(nil)
}

// ClearStatus resets the status message.
func (s *AuthState) ClearStatus() {
	s.Status.Set("")
}

// ProfileState is the platform-facing profile facade: the signed-in user,
// their band, and edit operations over both.
type ProfileState struct {
	app *App

	CurrentUser *State[*domain.User]
	CurrentBand *State[*domain.Band]
	Status      *State[string]
	Loading     *State[bool]
}

// NewProfileState builds the facade, seeding the user from the session.
// Band data loads on RefreshBand.
func NewProfileState(app *App) *ProfileState {
	s := &ProfileState{
		app:         app,
		CurrentUser: NewState[*domain.User](nil),
		CurrentBand: NewState[*domain.Band](nil),
		Status:      NewState(""),
		Loading:     NewState(false),
	}
	if user, ok := app.CurrentUser(); ok {
		s.CurrentUser.Set(&user)
	}
	return s
}

// RefreshBand reloads the band of the current user, if any.
func (s *ProfileState) RefreshBand() {
	user := s.CurrentUser.Get()
	if user == nil || user.BandID == "" {
		s.CurrentBand.Set(nil)
		return
	}
	band, ok, err := s.app.Band(user.BandID)
	if err != nil || !ok {
		s.CurrentBand.Set(nil)
		return
	}
	s.CurrentBand.Set(&band)
}

// UpdateDisplayName renames the signed-in user.
func (s *ProfileState) UpdateDisplayName(displayName string) {
	user := s.CurrentUser.Get()
	if user == nil {
		return
	}
	s.Loading.Set(true)
	updated := *user
	updated.DisplayName = displayName
	saved, err := s.app.UpdateUser(updated)
	if err != nil {
		s.Status.Set(err.Error())
	} else {
		s.CurrentUser.Set(&saved)
		s.Status.Set("Profile updated successfully")
	}
	s.Loading.Set(false)
}

// UpdateBandName renames the current user's band.
func (s *ProfileState) UpdateBandName(bandName string) {
	user := s.CurrentUser.Get()
	if user == nil || user.BandID == "" {
		return
	}
	s.Loading.Set(true)
	defer s.Loading.Set(false)
	band, ok, err := s.app.Band(user.BandID)
	if err != nil || !ok {
		s.Status.Set("Band not found")
		return
	}
	band.Name = bandName
	saved, err := s.app.UpdateBand(band)
	if err != nil {
		s.Status.Set(err.Error())
		return
	}
	s.CurrentBand.Set(&saved)
	s.Status.Set("Band name updated successfully")
}

// SignOut clears the session and both observable records.
func (s *ProfileState) SignOut() {
	_ = s.app.SignOut()
	s.CurrentUser.Set(nil)
	s.CurrentBand.Set(nil)
}

// ClearStatus resets the status message.
func (s *ProfileState) ClearStatus() {
	s.Status.Set("")
}
