package ports

import (
	"context"

	"github.com/storefront/account-api/internal/core/domain"
)

// AuthService covers credential verification and the token lifecycle for one guard.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.NewAccessToken, error)
	Logout(ctx context.Context, tokenID string) error
	Authenticate(ctx context.Context, plainText string) (*domain.Account, *domain.Token, error)
}

// UsageRecorder receives token usage notifications. Implementations must not block.
type UsageRecorder interface {
	Record(usage domain.TokenUsage)
}
