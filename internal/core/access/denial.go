package access

import "github.com/storefront/shop-api/internal/core/domain"

// Denial is returned when a request is rejected by the gate or the ownership
// check. It unwraps to domain.ErrUnauthenticated or domain.ErrForbidden.
type Denial struct {
	Decision Decision
	Message  string
}

func (d *Denial) Error() string {
	if d == nil {
		return ""
	}
	return d.Message
}

func (d *Denial) Unwrap() error {
	if d.Decision == Unauthenticated {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}
