package service

import (
	"context"

	"github.com/staffpoints/backend/internal/model"
)

type AuthService struct {
	store  *CredentialStore
	hasher *PasswordHasher
	tokens *TokenService
}

func NewAuthService(store *CredentialStore, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens}
}

// Login returns ErrUnauthorized for every credential failure, so an unknown
// user cannot be told apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	if username == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		return nil, ErrUnauthorized
	}
	// TokenService.Verify rejects tokens without a known role.
	if !user.Role.Valid() {
		return nil, ErrUnauthorized
	}

	token, _, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	}, nil
}

func (s *AuthService) ParseAccessToken(token string) (*model.Identity, error) {
	return s.tokens.Verify(token)
}
