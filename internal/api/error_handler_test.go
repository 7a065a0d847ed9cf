package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/account-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, log zerolog.Logger, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/customers", nil)
	rec := httptest.NewRecorder()
	NewHTTPErrorHandler(log)(err, e.NewContext(req, rec))
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, `{"message":"Unauthenticated."}`},
		{fmt.Errorf("logout: %w", domain.ErrTokenNotFound), http.StatusUnauthorized, `{"message":"Unauthenticated."}`},
		{domain.ErrForbidden, http.StatusForbidden, `{"message":"Invalid ability provided."}`},
		{domain.ErrEmailTaken, http.StatusUnprocessableEntity, `{"message":"The email has already been taken."}`},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, `{"message":"invalid payload"}`},
		{echo.ErrNotFound, http.StatusNotFound, `{"message":"Not Found"}`},
		{echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]string{"message": "x"}), http.StatusUnprocessableEntity, `{"message":"x"}`},
	}
	for _, tc := range cases {
		rec := runErrorHandler(t, zerolog.Nop(), tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != tc.body {
			t.Fatalf("%v: unexpected body %s", tc.err, rec.Body.String())
		}
	}
}

func TestHTTPErrorHandler_HidesUnexpectedErrors(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	rec := runErrorHandler(t, log, errors.New("mongo: connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "connection reset by peer") {
		t.Fatalf("expected the cause to be logged, got %q", buf.String())
	}
}
