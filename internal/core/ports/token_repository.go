package ports

import (
	"context"
	"time"

	"github.com/storefront/account-api/internal/core/domain"
)

// TokenRepository persists issued bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	// FindByID returns domain.ErrTokenNotFound when no live row exists.
	FindByID(ctx context.Context, id string) (*domain.Token, error)
	// Delete removes exactly one token; domain.ErrTokenNotFound if it was already gone.
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, kind domain.AccountKind, ownerID string) (int64, error)
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}
