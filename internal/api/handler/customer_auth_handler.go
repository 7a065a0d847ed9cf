package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/api/metrics"
	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
	"github.com/storefront/account-api/internal/pkg/validation"
)

// CustomerAuthHandler serves customer self-registration, login and logout.
type CustomerAuthHandler struct {
	auth      ports.AuthService
	customers ports.CustomerService
}

func NewCustomerAuthHandler(auth ports.AuthService, customers ports.CustomerService) *CustomerAuthHandler {
	return &CustomerAuthHandler{auth: auth, customers: customers}
}

// Register creates a customer account.
//
// @Summary      Register a customer
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        body  body      registerCustomerRequest  true  "Customer details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      422   {object}  validationResponse
// @Router       /customer/register [post]
func (h *CustomerAuthHandler) Register(c echo.Context) error {
	var req registerCustomerRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Register(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return unprocessable(validation.EmailTaken())
		}
		return err
	}

	metrics.CustomerMutationsTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("The customer (#%s) is created successfully.", customer.ID),
	})
}

// Login authenticates a customer and returns a bearer token.
//
// @Summary      Customer login
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Customer credentials"
// @Success      200   {object}  customerLoginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  customerLoginError
// @Failure      422   {object}  validationResponse
// @Router       /customer/login [post]
func (h *CustomerAuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	issued, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(string(domain.KindCustomer), "invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, customerLoginError{Error: "The provided credentials are incorrect."})
		}
		metrics.LoginsTotal.WithLabelValues(string(domain.KindCustomer), "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(domain.KindCustomer), "success").Inc()
	return c.JSON(http.StatusOK, customerLoginResponse{Data: customerTokenData{
		Token:     issued.PlainText,
		ExpiresAt: issued.Token.ExpiresAt,
	}})
}

// Logout revokes the bearer token used for this request.
//
// @Summary      Customer logout
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /customer/logout [get]
func (h *CustomerAuthHandler) Logout(c echo.Context) error {
	if err := revokeCurrent(c, h.auth, domain.KindCustomer); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "The customer logged out successfully."})
}
