package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/pkg/validation"
)

// echoValidator wraps the validation package so Echo can call c.Validate(req).
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Validate(i)
}

type validationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// bindRequest decodes the body into req and validates it. Failures come back
// as *echo.HTTPError values carrying the response body.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return unprocessable(err)
	}
	return nil
}

func unprocessable(err error) error {
	var ve *validation.Errors
	if !errors.As(err, &ve) {
		return err
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, validationResponse{
		Message: ve.Summary(),
		Errors:  ve.Fields,
	})
}
