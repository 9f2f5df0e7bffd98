// Package session holds the signed-in admin's token and profile as an explicit object that the
// REST client receives at construction. Nothing here is global.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go-storefront-admin/internal/model"
	"go-storefront-admin/pkg/jwt"
	"go-storefront-admin/pkg/logger"
)

var ErrNoSession = errors.New("no stored session")

// Store persists the session between restarts.
type Store interface {
	Load(ctx context.Context) (*model.SessionData, error)
	Save(ctx context.Context, data *model.SessionData) error
	Clear(ctx context.Context) error
}

type Session struct {
	store Store
	log   *zap.Logger
	now   func() time.Time

	mu   sync.RWMutex
	data *model.SessionData
}

func New(store Store, log *zap.Logger) *Session {
	return &Session{
		store: store,
		log:   logger.OrNop(log).Named("session"),
		now:   time.Now,
	}
}

// Restore loads a previously saved session. An expired one is cleared.
func (s *Session) Restore(ctx context.Context) error {
	data, err := s.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "error while loading session")
	}
	if _, err := jwt.ValidateToken(data.Token, s.now()); err != nil {
		s.log.Info("stored session expired, clearing")
		return s.store.Clear(ctx)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	s.log.Info("session restored", zap.String("email", data.User.Email))
	return nil
}

// Begin starts a session after a successful backend login.
func (s *Session) Begin(ctx context.Context, data model.SessionData) error {
	if err := s.store.Save(ctx, &data); err != nil {
		return errors.Wrap(err, "error while saving session")
	}
	s.mu.Lock()
	s.data = &data
	s.mu.Unlock()
	s.log.Info("session started", zap.String("email", data.User.Email))
	return nil
}

// End logs out: memory and store are both cleared.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return errors.Wrap(err, "error while clearing session")
	}
	s.log.Info("session ended")
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return ""
	}
	return s.data.Token
}

func (s *Session) User() (model.AdminUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return model.AdminUser{}, false
	}
	return s.data.User, true
}

// IsAuthenticated is true while a token is held and its exp claim lies in the future.
func (s *Session) IsAuthenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	_, err := jwt.ValidateToken(token, s.now())
	return err == nil
}
