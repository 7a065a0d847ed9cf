package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Ability requires the current token to carry every listed ability.
func Ability(abilities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := TokenFrom(c)
			if !ok {
				return Unauthenticated()
			}
			for _, a := range abilities {
				if !token.Can(a) {
					return c.JSON(http.StatusForbidden, map[string]string{"message": "Invalid ability provided."})
				}
			}
			return next(c)
		}
	}
}
