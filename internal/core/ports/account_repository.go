package ports

import (
	"context"
	"time"

	"github.com/storefront/account-api/internal/core/domain"
)

// AccountRepository persists accounts of a single kind (admins or customers).
type AccountRepository interface {
	// FindByEmail is an exact-match lookup. Returns domain.ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Create returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// Update applies only the non-nil fields of patch.
	Update(ctx context.Context, id string, patch domain.AccountPatch) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	// List returns one page of accounts ordered by creation time (page is 1-based).
	List(ctx context.Context, page, limit int) ([]*domain.Account, error)
	// TouchLastLogin sets last_login and nothing else.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
