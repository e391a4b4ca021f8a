package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/apperr"
	"github.com/arabianblog/backend/internal/config"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/repository"
	"github.com/arabianblog/backend/pkg/crypto"
	"github.com/arabianblog/backend/pkg/validation"
)

// AdminService manages administrator accounts
type AdminService struct {
	accounts repository.AccountRepository
	cfg      *config.Config
}

func NewAdminService(accounts repository.AccountRepository, cfg *config.Config) *AdminService {
	return &AdminService{accounts: accounts, cfg: cfg}
}

// ListAdmins returns all admin accounts, passwords excluded by the model
func (s *AdminService) ListAdmins(ctx context.Context) ([]models.Account, error) {
	admins, err := s.accounts.FindByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, apperr.Persistence("failed to list administrators", err)
	}
	return admins, nil
}

// CreateAdmin creates a new administrator account
func (s *AdminService) CreateAdmin(ctx context.Context, fullName, username, password string) (*models.Account, error) {
	if fullName == "" || username == "" || password == "" {
		return nil, apperr.Validation("full name, username and password are required")
	}
	if !validation.ValidateUsername(username) {
		return nil, apperr.Validation("invalid username format")
	}
	if !validation.ValidatePassword(password) {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	if _, err := s.accounts.FindByUsername(ctx, username); err == nil {
		return nil, apperr.Validation("user already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Persistence("failed to check username", err)
	}

	hashed, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperr.Persistence("failed to hash password", err)
	}

	account := &models.Account{
		FullName: fullName,
		Username: username,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperr.Persistence("failed to create administrator", err)
	}

	return account, nil
}

// DeleteAdmin removes an administrator account by id
func (s *AdminService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("administrator not found")
		}
		return apperr.Persistence("failed to delete administrator", err)
	}
	return nil
}
