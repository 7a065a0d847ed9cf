package ports

import (
	"context"

	"github.com/storefront/account-api/internal/core/domain"
)

// CreateCustomerInput carries the fields accepted when creating a customer.
type CreateCustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	IsSuspended *string
}

// UpdateCustomerInput carries a partial update; nil fields are not changed.
type UpdateCustomerInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	PhoneNumber *string
	IsSuspended *string
}

// CustomerService defines the customer management use cases.
type CustomerService interface {
	Register(ctx context.Context, input CreateCustomerInput) (*domain.Account, error)
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Account, error)
	List(ctx context.Context, page, limit int) ([]*domain.Account, error)
	Update(ctx context.Context, id string, input UpdateCustomerInput) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
