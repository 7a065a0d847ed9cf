package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/api/metrics"
	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
	"github.com/storefront/account-api/internal/pkg/validation"
)

// AdminCustomerHandler lets admins manage customer accounts.
type AdminCustomerHandler struct {
	customers ports.CustomerService
}

func NewAdminCustomerHandler(customers ports.CustomerService) *AdminCustomerHandler {
	return &AdminCustomerHandler{customers: customers}
}

func customerNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, messageResponse{Message: "Customer not found."})
}

// Store creates a customer.
//
// @Summary      Create a customer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  customerDataResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      422   {object}  validationResponse
// @Router       /admin/customer [post]
func (h *AdminCustomerHandler) Store(c echo.Context) error {
	var req createCustomerRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return unprocessable(validation.EmailTaken())
		}
		return err
	}

	metrics.CustomerMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, customerDataResponse{Data: toCustomerResource(customer)})
}

// Index lists customers one page at a time.
//
// @Summary      List customers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 15, max 100)"
// @Success      200    {object}  customerListResponse
// @Failure      401    {object}  messageResponse
// @Failure      403    {object}  messageResponse
// @Router       /admin/customers [get]
func (h *AdminCustomerHandler) Index(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	customers, err := h.customers.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customerListResponse{Customers: toCustomerResources(customers)})
}

// Update applies a partial update to a customer.
//
// @Summary      Update a customer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Customer ID"
// @Param        body  body      updateCustomerRequest  true  "Fields to change"
// @Success      200   {object}  customerResource
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  validationResponse
// @Router       /admin/customer/{id} [put]
func (h *AdminCustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return customerNotFound(c)
		case errors.Is(err, domain.ErrEmailTaken):
			return unprocessable(validation.EmailTaken())
		}
		return err
	}

	metrics.CustomerMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toCustomerResource(customer))
}

// Destroy deletes a customer together with its tokens.
//
// @Summary      Delete a customer
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /admin/customer/{id} [delete]
func (h *AdminCustomerHandler) Destroy(c echo.Context) error {
	id := c.Param("id")
	if err := h.customers.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return customerNotFound(c)
		}
		return err
	}

	metrics.CustomerMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("The customer (#%s) deleted successfully.", id),
	})
}
