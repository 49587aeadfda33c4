package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/api/response"
	"github.com/storefront/shop-api/internal/core/access"
)

// Authorize enforces the role gate for a route. It must run after
// Authenticate.
func Authorize(permitted access.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := access.Authorize(IdentityFrom(c), permitted)
			if err == nil {
				metrics.AccessDecisionsTotal.WithLabelValues(access.Allow.String()).Inc()
				return next(c)
			}

			var denial *access.Denial
			if !errors.As(err, &denial) {
				return err
			}
			metrics.AccessDecisionsTotal.WithLabelValues(denial.Decision.String()).Inc()

			code := http.StatusForbidden
			if denial.Decision == access.Unauthenticated {
				code = http.StatusUnauthorized
			}
			return response.Error(c, code, denial.Message)
		}
	}
}

// AdminOnly admits administrators.
func AdminOnly() echo.MiddlewareFunc { return Authorize(access.AdminOnly) }

// UserOrAdmin admits any authenticated user.
func UserOrAdmin() echo.MiddlewareFunc { return Authorize(access.UserOrAdmin) }
