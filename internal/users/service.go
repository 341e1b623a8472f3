package users

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// RecordLogin adds the user to the directory or refreshes their last login.
func (s *Service) RecordLogin(ctx context.Context, email, name, provider string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	email = normalizeEmail(email)
	if email == "" {
		return errors.New("user email is required")
	}
	if provider == "" {
		provider = ProviderPassword
	}
	return s.Repo.RecordLogin(ctx, User{Email: email, Name: strings.TrimSpace(name), Provider: provider})
}

func (s *Service) Get(ctx context.Context, email string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = normalizeEmail(email)
	if email == "" {
		return User{}, errors.New("user email is required")
	}
	return s.Repo.Get(ctx, email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
