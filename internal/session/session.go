// Package session owns the authenticated state of one user: the bearer
// token, the profile it belongs to and the daily macro target. A Session is
// created by Register or Login, restored by Resume and ended by Logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrSessionExpired   = errors.New("session expired, log in again")
)

// Identity issues tokens.
type Identity interface {
	Register(ctx context.Context, reg model.Registration) (model.Token, error)
	Login(ctx context.Context, username, password string) (model.Token, error)
}

// Account is the identity service as seen by a holder of a token.
type Account interface {
	Profile(ctx context.Context) (model.User, error)
	service.TargetSource
}

type TokenStore interface {
	LoadToken(ctx context.Context) (model.Token, bool, error)
	SaveToken(ctx context.Context, tok model.Token) error
	ClearToken(ctx context.Context) error
}

type Session struct {
	Token  model.Token
	User   model.User
	Target model.TargetState
	// ExpiresAt is zero for tokens that carry no expiry.
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Manager struct {
	Identity Identity
	Tokens   TokenStore
	// Account binds a token to the identity service.
	Account func(model.Token) Account
	Log     zerolog.Logger
	Now     func() time.Time
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *Manager) Register(ctx context.Context, reg model.Registration) (*Session, error) {
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}
	tok, err := m.Identity.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", reg.Username, err)
	}
	m.Log.Info().Str("username", reg.Username).Msg("registered")
	return m.start(ctx, tok)
}

func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	tok, err := m.Identity.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	m.Log.Info().Str("email", email).Msg("logged in")
	return m.start(ctx, tok)
}

// Resume restores the session from the stored token. An expired token or a
// token the profile endpoint rejects is removed from the store.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	tok, ok, err := m.Tokens.LoadToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if exp := tokenExpiry(tok.AccessToken); !exp.IsZero() && !m.now().Before(exp) {
		m.Log.Info().Time("expired_at", exp).Msg("stored session expired")
		if err := m.Tokens.ClearToken(ctx); err != nil {
			return nil, fmt.Errorf("clear expired token: %w", err)
		}
		return nil, ErrSessionExpired
	}
	return m.open(ctx, tok)
}

func (m *Manager) Logout(ctx context.Context) error {
	if err := m.Tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	m.Log.Info().Msg("logged out")
	return nil
}

func (m *Manager) start(ctx context.Context, tok model.Token) (*Session, error) {
	if err := m.Tokens.SaveToken(ctx, tok); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}
	return m.open(ctx, tok)
}

func (m *Manager) open(ctx context.Context, tok model.Token) (*Session, error) {
	acct := m.Account(tok)
	user, err := acct.Profile(ctx)
	if err != nil {
		if clearErr := m.Tokens.ClearToken(ctx); clearErr != nil {
			m.Log.Warn().Err(clearErr).Msg("clear token after profile failure")
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &Session{
		Token:     tok,
		User:      user,
		Target:    service.ResolveTarget(ctx, acct, m.Log),
		ExpiresAt: tokenExpiry(tok.AccessToken),
	}, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority on validity.
func tokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func validateRegistration(reg model.Registration) error {
	if strings.TrimSpace(reg.Username) == "" || strings.TrimSpace(reg.Email) == "" || reg.Password == "" {
		return fmt.Errorf("username, email and password are required")
	}
	if reg.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if reg.WeightKg <= 0 || reg.HeightCm <= 0 {
		return fmt.Errorf("weight and height must be > 0")
	}
	if !validActivity(reg.ActivityLevel) {
		return fmt.Errorf("invalid activity level %q", reg.ActivityLevel)
	}
	if !validGoal(reg.FitnessGoal) {
		return fmt.Errorf("invalid fitness goal %q", reg.FitnessGoal)
	}
	return nil
}

func validActivity(a model.ActivityLevel) bool {
	for _, v := range model.ActivityLevels {
		if v == a {
			return true
		}
	}
	return false
}

func validGoal(g model.FitnessGoal) bool {
	for _, v := range model.FitnessGoals {
		if v == g {
			return true
		}
	}
	return false
}
