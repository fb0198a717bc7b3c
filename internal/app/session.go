package app

import (
	"context"
	"sync"
)

// Generic user-facing error strings. State never retains the underlying
// error, only one of these.
const (
	errInvalidCredentials = "Invalid credentials"
	errRegistrationFailed = "Registration failed"
)

// AuthAPI is the slice of the remote access layer the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, User, error)
	Register(ctx context.Context, email, password, firstName, lastName string, role UserRole) (string, User, error)
	Me(ctx context.Context) (User, error)
}

// TokenStore persists the bearer credential across restarts.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	DeleteToken() error
}

// SessionState is a point-in-time copy of the session store's state.
type SessionState struct {
	IsAuthenticated bool
	User            *User
	Loading         bool
	Error           string
}

// Session holds authentication status and the current user. It starts in a
// loading state until Resolve has checked the stored credential once.
type Session struct {
	api    AuthAPI
	tokens TokenStore
	logger *Logger

	mu            sync.Mutex
	authenticated bool
	user          *User
	loading       bool
	err           string
}

func NewSession(api AuthAPI, tokens TokenStore, logger *Logger) *Session {
	return &Session{
		api:     api,
		tokens:  tokens,
		logger:  logger,
		loading: true,
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := SessionState{
		IsAuthenticated: s.authenticated,
		Loading:         s.loading,
		Error:           s.err,
	}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	return state
}

// Resolve checks the stored credential exactly once at startup. A missing
// credential resolves to unauthenticated. A credential the server rejects is
// deleted and the session resolves to unauthenticated without surfacing an
// error; the explicit login path is the loud one.
func (s *Session) Resolve(ctx context.Context) {
	if s.tokens.Token() == "" {
		s.set(func() {
			s.authenticated = false
			s.user = nil
			s.loading = false
			s.err = ""
		})
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Info("stored credential rejected, clearing", map[string]interface{}{"error": err.Error()})
		_ = s.tokens.DeleteToken()
		s.set(func() {
			s.authenticated = false
			s.user = nil
			s.loading = false
			s.err = ""
		})
		return
	}

	s.set(func() {
		s.authenticated = true
		s.user = &user
		s.loading = false
		s.err = ""
	})
}

// Login authenticates against the backend. On failure the error is both
// recorded in state and returned, so a form can stay open and react.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.set(func() {
		s.loading = true
		s.err = ""
	})

	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Error("login failed", map[string]interface{}{"email": email, "error": err.Error()})
		s.set(func() {
			s.loading = false
			s.err = errInvalidCredentials
		})
		return err
	}

	if err := s.tokens.SetToken(token); err != nil {
		s.logger.Error("credential persist failed", map[string]interface{}{"error": err.Error()})
	}
	s.set(func() {
		s.authenticated = true
		s.user = &user
		s.loading = false
		s.err = ""
	})
	return nil
}

// Register follows the login contract against the registration endpoint.
func (s *Session) Register(ctx context.Context, email, password, firstName, lastName string, role UserRole) error {
	s.set(func() {
		s.loading = true
		s.err = ""
	})

	token, user, err := s.api.Register(ctx, email, password, firstName, lastName, role)
	if err != nil {
		s.logger.Error("registration failed", map[string]interface{}{"email": email, "error": err.Error()})
		s.set(func() {
			s.loading = false
			s.err = errRegistrationFailed
		})
		return err
	}

	if err := s.tokens.SetToken(token); err != nil {
		s.logger.Error("credential persist failed", map[string]interface{}{"error": err.Error()})
	}
	s.set(func() {
		s.authenticated = true
		s.user = &user
		s.loading = false
		s.err = ""
	})
	return nil
}

// Logout deletes the stored credential and resets state. Purely client-side;
// no server call is made.
func (s *Session) Logout() {
	_ = s.tokens.DeleteToken()
	s.set(func() {
		s.authenticated = false
		s.user = nil
		s.loading = false
		s.err = ""
	})
}

func (s *Session) ClearError() {
	s.set(func() { s.err = "" })
}

// CanModerate reports whether the current user may moderate chats.
func (s *Session) CanModerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.user == nil {
		return false
	}
	return s.user.Role == RoleAdmin || s.user.Role == RoleModerator
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated && s.user != nil && s.user.Role == RoleAdmin
}

func (s *Session) IsObserver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated && s.user != nil && s.user.Role == RoleObserver
}

func (s *Session) set(mutate func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate()
}
