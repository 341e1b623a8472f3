// Package session keeps the logged-in state of a browser session.
package session

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"careercraft-backend/internal/events"
	"careercraft-backend/internal/shared/auth"
	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/storage/kv"
	"careercraft-backend/internal/shared/telemetry"
	"careercraft-backend/internal/users"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrPasswordsMismatch = errors.New("passwords do not match")
)

// UserDirectory records who has logged in.
type UserDirectory interface {
	RecordLogin(ctx context.Context, email, name, provider string) error
}

// Service stores session state per session id and issues session tokens.
type Service struct {
	Store  kv.Store
	Signer *auth.Signer
	Users  UserDirectory
	Events events.Publisher
}

// Login is the outcome of a successful login.
type Login struct {
	SessionID string
	Token     string
	State     State
}

// Login marks the session logged in as profile. No password is checked. An
// empty sessionID starts a new session.
func (s *Service) Login(ctx context.Context, sessionID string, profile Profile, provider string) (Login, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Email == "" {
		return Login{}, errors.Wrap(ErrInvalidInput, "email is required")
	}
	if _, err := mail.ParseAddress(profile.Email); err != nil {
		return Login{}, errors.Wrap(ErrInvalidInput, "email is not valid")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state := State{User: &profile, IsLoggedIn: true}
	if err := s.save(ctx, sessionID, state); err != nil {
		return Login{}, err
	}
	token, err := s.Signer.Sign(sessionID, profile.Email, profile.Name)
	if err != nil {
		return Login{}, err
	}

	if s.Users != nil {
		if err := s.Users.RecordLogin(ctx, profile.Email, profile.Name, provider); err != nil {
			telemetry.Warn("users.record_login_failed", map[string]any{"session_id": sessionID, "error": err})
		}
	}
	if s.Events != nil {
		ev := events.New(events.UserLoggedIn, kv.UserOwner(profile.Email), map[string]any{"provider": provider})
		if err := s.Events.Publish(ctx, ev); err != nil {
			telemetry.Warn("events.publish_failed", map[string]any{"type": ev.Type, "error": err})
		}
	}
	telemetry.Info("session.login", map[string]any{"session_id": sessionID, "provider": provider})
	return Login{SessionID: sessionID, Token: token, State: state}, nil
}

// Signup is Login preceded by the password confirmation check.
func (s *Service) Signup(ctx context.Context, sessionID string, profile Profile, password, confirm string) (Login, error) {
	if password != confirm {
		return Login{}, ErrPasswordsMismatch
	}
	return s.Login(ctx, sessionID, profile, users.ProviderPassword)
}

// Logout clears the user of the session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	telemetry.Info("session.logout", map[string]any{"session_id": sessionID})
	return s.save(ctx, sessionID, State{})
}

// Current returns the session state. Unknown sessions are logged out.
func (s *Service) Current(ctx context.Context, sessionID string) (State, error) {
	if sessionID == "" {
		return State{}, nil
	}
	raw, err := s.Store.Get(ctx, kv.SessionOwner(sessionID), kv.SlotAuth)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return State{}, nil
	case err != nil:
		return State{}, errors.Wrap(err, "load session")
	}
	state, err := decodeState(raw)
	if err != nil {
		telemetry.Warn("session.unreadable", map[string]any{"session_id": sessionID, "error": err})
		return State{}, nil
	}
	return state, nil
}

// Resolve turns a session token into the caller's identity.
func (s *Service) Resolve(ctx context.Context, token string) (middleware.Identity, error) {
	claims, err := s.Signer.Verify(token)
	if err != nil {
		return middleware.Identity{}, err
	}
	state, err := s.Current(ctx, claims.Subject)
	if err != nil {
		return middleware.Identity{}, err
	}
	id := middleware.Identity{SessionID: claims.Subject, LoggedIn: state.IsLoggedIn}
	if state.User != nil {
		id.Name = state.User.Name
		id.Email = state.User.Email
	}
	return id, nil
}

// CookieMaxAge keeps remembered sessions for the token lifetime; others end
// with the browser session.
func (s *Service) CookieMaxAge(state State) int {
	if state.User != nil && state.User.RememberMe {
		return int(s.Signer.TTL().Seconds())
	}
	return 0
}

func (s *Service) save(ctx context.Context, sessionID string, state State) error {
	raw, err := encodeState(state)
	if err != nil {
		return err
	}
	return errors.Wrap(s.Store.Put(ctx, kv.SessionOwner(sessionID), kv.SlotAuth, raw), "save session")
}

var _ middleware.SessionResolver = (*Service)(nil)
