package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/config"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
	"github.com/arabianblog/backend/pkg/crypto"
	jwtpkg "github.com/arabianblog/backend/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	accounts repository.AccountRepository
	cfg      *config.Config
}

func NewAuthService(accounts repository.AccountRepository, cfg *config.Config) *AuthService {
	return &AuthService{accounts: accounts, cfg: cfg}
}

// Login authenticates an account and returns an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !crypto.CheckPassword(password, account.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwtpkg.GenerateToken(account.ID.String(), string(account.Role), s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// ValidateAccessToken validates a bearer token and returns its claims
func (s *AuthService) ValidateAccessToken(token string) (*jwtpkg.Claims, error) {
	return jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
}

// GetAccountByID retrieves an account by id
func (s *AuthService) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// EnsureDefaultAdmin creates the bootstrap admin account on first
// start. It is idempotent: an existing account with the configured
// username short-circuits.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	if _, err := s.accounts.FindByUsername(ctx, s.cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hashed, err := crypto.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &models.Account{
		FullName: s.cfg.AdminFullName,
		Username: s.cfg.AdminUsername,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.accounts.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("[Bootstrap] default admin account created (username: %s)", s.cfg.AdminUsername)
	return nil
}
