package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/api/response"
	"github.com/storefront/shop-api/internal/core/access"
	"github.com/storefront/shop-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps access denials and known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the JSON envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = response.Error(c, code, msg)
	}
}

type errorMapping struct {
	err  error
	code int
	msg  string
}

func (m errorMapping) message() string {
	if m.msg != "" {
		return m.msg
	}
	return m.err.Error()
}

var domainErrors = []errorMapping{
	{err: domain.ErrUnauthenticated, code: http.StatusUnauthorized, msg: access.MsgNoToken},
	{err: domain.ErrForbidden, code: http.StatusForbidden, msg: access.MsgInsufficientRole},
	{err: domain.ErrInvalidID, code: http.StatusBadRequest},
	{err: domain.ErrUserNotFound, code: http.StatusNotFound},
	{err: domain.ErrOrderNotFound, code: http.StatusNotFound},
	{err: domain.ErrProductNotFound, code: http.StatusNotFound},
	{err: domain.ErrUserExists, code: http.StatusConflict},
	{err: domain.ErrInvalidStatus, code: http.StatusBadRequest},
	{err: domain.ErrEmptyOrder, code: http.StatusBadRequest},
	{err: domain.ErrInvalidQuantity, code: http.StatusBadRequest},
	{err: domain.ErrProfileIncomplete, code: http.StatusBadRequest},
	{err: domain.ErrPasswordTooLong, code: http.StatusBadRequest},
	{err: domain.ErrInvalidCredentials, code: http.StatusBadRequest},
	{err: domain.ErrAccountLocked, code: http.StatusTooManyRequests},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Denials raised by the ownership check inside a use case.
	var denial *access.Denial
	if errors.As(err, &denial) {
		metrics.AccessDecisionsTotal.WithLabelValues(denial.Decision.String()).Inc()
		if denial.Decision == access.Unauthenticated {
			return http.StatusUnauthorized, denial.Message
		}
		return http.StatusForbidden, denial.Message
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The sentinel's own text
	// is rendered so wrapping context stays in the logs.
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return m.code, m.message()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
