package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/api/response"
	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const identityKey = "identity"

// Authenticate verifies the bearer token, when one is sent, and attaches the
// resulting identity to the context. Requests without an Authorization header
// continue without an identity so the gate can answer with "no token".
func Authenticate(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return rejectToken(c)
			}

			id, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return rejectToken(c)
			}

			c.Set(identityKey, &id)
			return next(c)
		}
	}
}

func rejectToken(c echo.Context) error {
	metrics.AccessDecisionsTotal.WithLabelValues(access.Unauthenticated.String()).Inc()
	return response.Error(c, http.StatusUnauthorized, access.MsgInvalidToken)
}

// IdentityFrom returns the identity attached by Authenticate, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

// SetIdentity attaches id to the context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, &id)
}
