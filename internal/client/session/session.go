// Package session holds who is signed in. A Session is passed to whatever
// needs it; there is no package-level state.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/models"
	"github.com/dmitrijs2005/trustcart/internal/common"
	"github.com/dmitrijs2005/trustcart/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

type Status string

const (
	Anonymous     Status = "anonymous"
	Pending       Status = "pending"
	Authenticated Status = "authenticated"
)

// ErrLoginRequired is returned by Require when the caller must sign in
// (again) before proceeding.
var ErrLoginRequired = errors.New("login required")

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Status Status
	User   *models.User
}

// Role returns the signed-in role, or "" when nobody is signed in.
func (s Snapshot) Role() models.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// TokenStore persists the bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token, email string) error
	ClearToken(ctx context.Context) error
}

// API is the subset of the REST client the session needs.
type API interface {
	SignIn(ctx context.Context, email, password string) (*client.SignInResult, error)
	Me(ctx context.Context) (*models.User, error)
}

// now is a test seam for token expiry checks.
var now = time.Now

type Session struct {
	api   API
	store TokenStore
	log   logging.Logger

	mu     sync.RWMutex
	status Status
	user   *models.User
}

func New(api API, store TokenStore, log logging.Logger) *Session {
	return &Session{api: api, store: store, log: log, status: Anonymous}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Status: s.status}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Session) set(ctx context.Context, status Status, user *models.User) {
	s.mu.Lock()
	prev := s.status
	s.status = status
	s.user = user
	s.mu.Unlock()

	if prev != status {
		args := []any{"from", prev, "to", status}
		if user != nil {
			args = append(args, "user_id", user.ID, "role", user.Role)
		}
		s.log.Info(ctx, "session changed", args...)
	}
}

// Discover restores a session from the stored token. With no token the
// session stays anonymous. An expired token is dropped without asking
// the server; otherwise the user is fetched and a failed fetch drops the
// token too.
func (s *Session) Discover(ctx context.Context) error {
	token, err := s.store.Token(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		s.set(ctx, Anonymous, nil)
		return nil
	}
	if tokenExpired(token) {
		s.log.Info(ctx, "stored token expired")
		return s.drop(ctx, common.ErrTokenExpired)
	}
	return s.resolve(ctx)
}

// Login signs in, stores the token and resolves the user.
func (s *Session) Login(ctx context.Context, in forms.LoginInput) error {
	res, err := s.api.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return err
	}
	if err := s.store.SetToken(ctx, res.Token, in.Email); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return s.resolve(ctx)
}

// Refresh re-fetches the signed-in user. Failure ends the session.
func (s *Session) Refresh(ctx context.Context) error {
	if s.Snapshot().Status == Anonymous {
		return ErrLoginRequired
	}
	return s.resolve(ctx)
}

// SetUser replaces the cached user after a profile update.
func (s *Session) SetUser(ctx context.Context, u *models.User) {
	if u == nil {
		return
	}
	cp := *u
	s.set(ctx, Authenticated, &cp)
}

func (s *Session) Logout(ctx context.Context) error {
	return s.clear(ctx, "logout")
}

// AccountDeleted ends the session after the account is gone.
func (s *Session) AccountDeleted(ctx context.Context) error {
	return s.clear(ctx, "account deleted")
}

// Require checks that a user is signed in with one of roles. No roles
// means any signed-in user.
func (s *Session) Require(roles ...models.Role) error {
	snap := s.Snapshot()
	if snap.Status != Authenticated || snap.User == nil {
		return ErrLoginRequired
	}
	if len(roles) > 0 && !slices.Contains(roles, snap.User.Role) {
		return fmt.Errorf("%w: role %q not allowed", ErrLoginRequired, snap.User.Role)
	}
	return nil
}

func (s *Session) resolve(ctx context.Context) error {
	s.set(ctx, Pending, nil)

	u, err := s.api.Me(ctx)
	if err != nil {
		s.log.Warn(ctx, "user fetch failed", "error", err)
		return s.drop(ctx, err)
	}
	s.set(ctx, Authenticated, u)
	return nil
}

// drop clears the token and returns cause.
func (s *Session) drop(ctx context.Context, cause error) error {
	if err := s.store.ClearToken(ctx); err != nil {
		s.set(ctx, Anonymous, nil)
		return errors.Join(cause, fmt.Errorf("clear token: %w", err))
	}
	s.set(ctx, Anonymous, nil)
	return cause
}

func (s *Session) clear(ctx context.Context, reason string) error {
	err := s.store.ClearToken(ctx)
	s.set(ctx, Anonymous, nil)
	if err != nil {
		return fmt.Errorf("%s: clear token: %w", reason, err)
	}
	return nil
}

// tokenExpired reads the exp claim without verifying the signature; the
// client holds no key. Tokens that do not parse are left to the server.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now())
}
