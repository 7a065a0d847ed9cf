package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/api/metrics"
	"github.com/storefront/account-api/internal/api/middleware"
	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

// AdminAuthHandler serves the admin login and logout endpoints.
type AdminAuthHandler struct {
	auth ports.AuthService
}

func NewAdminAuthHandler(auth ports.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

// Login authenticates an admin and returns a bearer token.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      422   {object}  validationResponse
// @Router       /admin/login [post]
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	issued, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(string(domain.KindAdmin), "invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "The email or password are incorrect!"})
		}
		metrics.LoginsTotal.WithLabelValues(string(domain.KindAdmin), "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(domain.KindAdmin), "success").Inc()
	return c.JSON(http.StatusOK, adminLoginResponse{Data: adminTokenData{
		BearerToken: issued.PlainText,
		ExpiresAt:   issued.Token.ExpiresAt,
	}})
}

// Logout revokes the bearer token used for this request.
//
// @Summary      Admin logout
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /admin/logout [get]
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	if err := revokeCurrent(c, h.auth, domain.KindAdmin); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out has been successful."})
}

// revokeCurrent deletes the token that authenticated c. A token already gone
// by the time it is deleted reads as unauthenticated.
func revokeCurrent(c echo.Context, auth ports.AuthService, guard domain.AccountKind) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	if err := auth.Logout(c.Request().Context(), token.ID); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return middleware.Unauthenticated()
		}
		return err
	}

	metrics.LogoutsTotal.WithLabelValues(string(guard)).Inc()
	return nil
}
