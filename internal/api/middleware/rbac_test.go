package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	user := &domain.Identity{UserID: "u1"}
	admin := &domain.Identity{UserID: "a1", IsAdmin: true}

	tests := []struct {
		name     string
		mw       echo.MiddlewareFunc
		identity *domain.Identity
		wantCode int
		wantMsg  string
	}{
		{name: "admin on admin route", mw: AdminOnly(), identity: admin, wantCode: http.StatusOK},
		{name: "user on admin route", mw: AdminOnly(), identity: user, wantCode: http.StatusForbidden, wantMsg: access.MsgInsufficientRole},
		{name: "anonymous on admin route", mw: AdminOnly(), wantCode: http.StatusUnauthorized, wantMsg: access.MsgNoToken},
		{name: "user on user route", mw: UserOrAdmin(), identity: user, wantCode: http.StatusOK},
		{name: "admin on user route", mw: UserOrAdmin(), identity: admin, wantCode: http.StatusOK},
		{name: "anonymous on user route", mw: UserOrAdmin(), wantCode: http.StatusUnauthorized, wantMsg: access.MsgNoToken},
		{name: "anonymous on any-role route", mw: Authorize(access.NewRoleSet()), wantCode: http.StatusUnauthorized, wantMsg: access.MsgNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.identity != nil {
				SetIdentity(c, *tt.identity)
			}

			called := false
			h := tt.mw(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode == http.StatusOK {
				if !called {
					t.Fatal("next handler not called")
				}
				return
			}
			if called {
				t.Fatal("next handler must not be called")
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Message != tt.wantMsg {
				t.Fatalf("unexpected envelope: %+v", env)
			}
		})
	}
}
