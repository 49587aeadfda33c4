package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"ownership denial", &access.Denial{Decision: access.Forbidden, Message: "Forbidden - You can only access your own orders"}, http.StatusForbidden, "Forbidden - You can only access your own orders"},
		{"wrapped denial", fmt.Errorf("get: %w", &access.Denial{Decision: access.Unauthenticated, Message: access.MsgNoToken}), http.StatusUnauthorized, access.MsgNoToken},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "invalid id"},
		{"order not found", fmt.Errorf("create order: %w", domain.ErrOrderNotFound), http.StatusNotFound, "order not found"},
		{"product not found", domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"wrapped product not found", fmt.Errorf("create order: %w", domain.ErrProductNotFound), http.StatusNotFound, "product not found"},
		{"incomplete profile", domain.ErrProfileIncomplete, http.StatusBadRequest, "name, email and password are required"},
		{"password too long", fmt.Errorf("update user: %w", domain.ErrPasswordTooLong), http.StatusBadRequest, "password must be at most 72 bytes"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "invalid order status"},
		{"locked", domain.ErrAccountLocked, http.StatusTooManyRequests, "too many login attempts"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			env := envelopeOf(t, rec)
			if env.Success || env.Message != tt.wantMsg {
				t.Fatalf("unexpected envelope: %+v", env)
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)
	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response must be left alone, got %d %q", rec.Code, rec.Body.String())
	}
}
