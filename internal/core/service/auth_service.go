package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

// AuthConfig describes the tokens a guard hands out.
type AuthConfig struct {
	// TokenName labels issued tokens (e.g. "auth_token").
	TokenName string
	// Abilities granted to every token issued by this guard.
	Abilities []string
	// TokenTTL bounds token lifetime. Zero means tokens never expire.
	TokenTTL time.Duration
}

// AuthService verifies credentials and manages bearer tokens for one account kind.
type AuthService struct {
	kind     domain.AccountKind
	accounts ports.AccountRepository
	tokens   ports.TokenRepository
	usage    ports.UsageRecorder
	cfg      AuthConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	kind domain.AccountKind,
	accounts ports.AccountRepository,
	tokens ports.TokenRepository,
	usage ports.UsageRecorder,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if len(cfg.Abilities) == 0 {
		cfg.Abilities = []string{domain.AbilityAll}
	}
	return &AuthService{
		kind:     kind,
		accounts: accounts,
		tokens:   tokens,
		usage:    usage,
		cfg:      cfg,
		log:      log.With().Str("guard", string(kind)).Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies the credentials, issues a token and records the login time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.NewAccessToken, error) {
	account, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	issued, err := s.issue(ctx, account)
	if err != nil {
		return nil, err
	}

	// A failed last_login write does not fail the login.
	if err := s.accounts.TouchLastLogin(ctx, account.ID, issued.Token.CreatedAt); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to update last login")
	}

	s.log.Info().Str("account_id", account.ID).Str("token_id", issued.Token.ID).Msg("login succeeded")
	return issued, nil
}

// verify returns the account matching email and password, or
// domain.ErrInvalidCredentials without saying which half was wrong.
func (s *AuthService) verify(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			checkPassword(dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if account.PasswordHash == "" || !checkPassword(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func (s *AuthService) issue(ctx context.Context, account *domain.Account) (*domain.NewAccessToken, error) {
	id, plainText, hash, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &domain.Token{
		ID:        id,
		OwnerKind: s.kind,
		OwnerID:   account.ID,
		Name:      s.cfg.TokenName,
		Abilities: append([]string(nil), s.cfg.Abilities...),
		Hash:      hash,
		CreatedAt: now,
	}
	if s.cfg.TokenTTL > 0 {
		expires := now.Add(s.cfg.TokenTTL)
		token.ExpiresAt = &expires
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &domain.NewAccessToken{PlainText: plainText, Token: token}, nil
}

// Logout revokes exactly the given token. Other tokens of the owner stay valid.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.tokens.Delete(ctx, tokenID); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return err
		}
		return fmt.Errorf("delete token: %w", err)
	}
	s.log.Info().Str("token_id", tokenID).Msg("token revoked")
	return nil
}

// Authenticate resolves a presented plaintext token to its owner. Unknown,
// malformed, foreign-guard, mismatching and expired tokens all yield
// domain.ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, plainText string) (*domain.Account, *domain.Token, error) {
	id, secret, ok := parseToken(plainText)
	if !ok {
		return nil, nil, domain.ErrUnauthenticated
	}

	token, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("find token: %w", err)
	}

	if token.OwnerKind != s.kind || !hashesEqual(token.Hash, hashSecret(secret)) {
		return nil, nil, domain.ErrUnauthenticated
	}

	now := s.now()
	if token.Expired(now) {
		return nil, nil, domain.ErrUnauthenticated
	}

	account, err := s.accounts.FindByID(ctx, token.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("find token owner: %w", err)
	}

	if s.usage != nil {
		s.usage.Record(domain.TokenUsage{TokenID: token.ID, At: now})
	}
	return account, token, nil
}
