package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

const (
	defaultPageLimit = 15
	maxPageLimit     = 100
)

// CustomerService implements customer self-registration and admin management.
type CustomerService struct {
	customers ports.AccountRepository
	tokens    ports.TokenRepository
	log       zerolog.Logger
}

func NewCustomerService(customers ports.AccountRepository, tokens ports.TokenRepository, log zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, tokens: tokens, log: log}
}

// Register creates a customer from the public registration form.
func (s *CustomerService) Register(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error) {
	input.IsSuspended = nil
	return s.create(ctx, input)
}

// Create creates a customer on behalf of an admin.
func (s *CustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error) {
	return s.create(ctx, input)
}

func (s *CustomerService) create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.customers.Create(ctx, &domain.Account{
		Kind:         domain.KindCustomer,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		IsSuspended:  input.IsSuspended,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("customer_id", created.ID).Msg("customer created")
	return created, nil
}

// List returns one page of customers. Out-of-range arguments fall back to defaults.
func (s *CustomerService) List(ctx context.Context, page, limit int) ([]*domain.Account, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.customers.List(ctx, page, limit)
}

// Update applies a partial update; a new password is hashed before it is stored.
func (s *CustomerService) Update(ctx context.Context, id string, input ports.UpdateCustomerInput) (*domain.Account, error) {
	patch := domain.AccountPatch{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		IsSuspended: input.IsSuspended,
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		patch.Email = &email
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if patch.Empty() {
		return s.customers.FindByID(ctx, id)
	}
	return s.customers.Update(ctx, id, patch)
}

// Delete removes the customer and every token it owns.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	// A failed revoke must leave the customer in place.
	revoked, err := s.tokens.DeleteByOwner(ctx, domain.KindCustomer, id)
	if err != nil {
		return fmt.Errorf("revoke customer tokens: %w", err)
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("customer_id", id).Int64("tokens_revoked", revoked).Msg("customer deleted")
	return nil
}
