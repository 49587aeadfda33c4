package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// TokenIssuer signs access tokens for an identity.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier validates a raw bearer token and returns the identity it
// carries.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (domain.Identity, error)
}

// LoginLimiter tracks failed logins per account.
type LoginLimiter interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
