package domain

import (
	"errors"
	"time"
)

const (
	AbilityAll   = "*"
	AbilityAdmin = "admin"
)

var ErrTokenNotFound = errors.New("token not found")

// Token is one issued bearer credential. Only the hash of its secret is kept.
type Token struct {
	ID         string
	OwnerKind  AccountKind
	OwnerID    string
	Name       string
	Abilities  []string
	Hash       string
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without an expiry never expire.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}

// Can reports whether the token grants ability.
func (t *Token) Can(ability string) bool {
	for _, a := range t.Abilities {
		if a == AbilityAll || a == ability {
			return true
		}
	}
	return false
}

// NewAccessToken is the result of issuing a token: the stored row plus the
// plaintext, which is handed out exactly once.
type NewAccessToken struct {
	PlainText string
	Token     *Token
}

// TokenUsage records that a token authenticated a request at At.
type TokenUsage struct {
	TokenID string
	At      time.Time
}
