package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
)

// callerIdentity returns the identity attached by the Authenticate middleware.
// Routes that reach a handler without one were registered without the gate.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return domain.Identity{}, &access.Denial{Decision: access.Unauthenticated, Message: access.MsgNoToken}
	}
	return *id, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
