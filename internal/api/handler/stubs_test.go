package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn        func(ctx context.Context, email, password string) (*domain.NewAccessToken, error)
	logoutFn       func(ctx context.Context, tokenID string) error
	authenticateFn func(ctx context.Context, plainText string) (*domain.Account, *domain.Token, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.NewAccessToken, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string) error {
	return s.logoutFn(ctx, tokenID)
}

func (s *stubAuthService) Authenticate(ctx context.Context, plainText string) (*domain.Account, *domain.Token, error) {
	return s.authenticateFn(ctx, plainText)
}

type stubCustomerService struct {
	registerFn func(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error)
	createFn   func(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error)
	listFn     func(ctx context.Context, page, limit int) ([]*domain.Account, error)
	updateFn   func(ctx context.Context, id string, input ports.UpdateCustomerInput) (*domain.Account, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubCustomerService) Register(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubCustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *stubCustomerService) List(ctx context.Context, page, limit int) ([]*domain.Account, error) {
	return s.listFn(ctx, page, limit)
}

func (s *stubCustomerService) Update(ctx context.Context, id string, input ports.UpdateCustomerInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubCustomerService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// newContext builds a JSON request context on an echo instance that has the
// validator installed.
func newContext(method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

// serve runs h and renders a returned error the way echo would.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}
