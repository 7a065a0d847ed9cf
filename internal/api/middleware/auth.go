package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/api/metrics"
	"github.com/storefront/account-api/internal/core/domain"
)

// Context keys set by Auth.
const (
	ContextAccount = "account"
	ContextToken   = "token"
)

// Authenticator resolves a plaintext bearer token for one guard.
type Authenticator interface {
	Authenticate(ctx context.Context, plainText string) (*domain.Account, *domain.Token, error)
}

// Unauthenticated is the error every failed token check produces.
func Unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
}

// Auth validates the bearer token against guard and injects the account and
// token into context.
func Auth(guard domain.AccountKind, auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			plainText, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenChecksTotal.WithLabelValues(string(guard), "rejected").Inc()
				return Unauthenticated()
			}

			account, token, err := auth.Authenticate(c.Request().Context(), plainText)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					metrics.TokenChecksTotal.WithLabelValues(string(guard), "rejected").Inc()
					return Unauthenticated()
				}
				metrics.TokenChecksTotal.WithLabelValues(string(guard), "error").Inc()
				return err
			}

			metrics.TokenChecksTotal.WithLabelValues(string(guard), "ok").Inc()
			c.Set(ContextAccount, account)
			c.Set(ContextToken, token)

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AccountFrom returns the account injected by Auth.
func AccountFrom(c echo.Context) (*domain.Account, bool) {
	account, ok := c.Get(ContextAccount).(*domain.Account)
	return account, ok && account != nil
}

// TokenFrom returns the token injected by Auth.
func TokenFrom(c echo.Context) (*domain.Token, bool) {
	token, ok := c.Get(ContextToken).(*domain.Token)
	return token, ok && token != nil
}
