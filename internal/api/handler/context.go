package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/api/middleware"
	"github.com/storefront/account-api/internal/core/domain"
)

// ctxToken returns the token the Auth middleware resolved for this request.
// Its absence means the route was mounted without Auth.
func ctxToken(c echo.Context) (*domain.Token, error) {
	token, ok := middleware.TokenFrom(c)
	if !ok {
		return nil, middleware.Unauthenticated()
	}
	return token, nil
}
