package service

import (
	"context"
	"strings"
	"time"

	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

// AdminService bootstraps admin accounts from the command line.
type AdminService struct {
	admins ports.AccountRepository
}

func NewAdminService(admins ports.AccountRepository) *AdminService {
	return &AdminService{admins: admins}
}

// Create stores a new active admin with a hashed password.
func (s *AdminService) Create(ctx context.Context, email, password string) (*domain.Account, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.admins.Create(ctx, &domain.Account{
		Kind:         domain.KindAdmin,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Status:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
