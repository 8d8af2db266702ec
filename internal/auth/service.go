package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenStore
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenStore) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login validates credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, user)
}

// Logout revokes the presented token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Resolve maps a bearer token to the user it identifies.
func (s *Service) Resolve(ctx context.Context, token string) (*shared.AuthUser, error) {
	return s.tokens.Resolve(ctx, token)
}
