package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/remote"
	"go-storefront-admin/internal/session"
	"go-storefront-admin/pkg/logger"
	"go-storefront-admin/pkg/validator"
)

var ErrNotAuthenticated = errors.New("not signed in")

type LoginResponse struct {
	Token string          `json:"token"`
	User  model.AdminUser `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Me() (model.AdminUser, error)
}

type authService struct {
	store   remote.Store
	session *session.Session
	log     *zap.Logger
}

func NewAuthService(store remote.Store, sess *session.Session, log *zap.Logger) AuthService {
	return &authService{
		store:   store,
		session: sess,
		log:     logger.OrNop(log).Named("auth"),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(strings.ToLower(errs[0].Field), "A valid email and password are required")
	}

	data, err := s.store.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Info("login rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	if err := s.session.Begin(ctx, *data); err != nil {
		return nil, err
	}
	return &LoginResponse{Token: data.Token, User: data.User}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.session.End(ctx)
}

func (s *authService) Me() (model.AdminUser, error) {
	if !s.session.IsAuthenticated() {
		return model.AdminUser{}, ErrNotAuthenticated
	}
	user, _ := s.session.User()
	return user, nil
}
