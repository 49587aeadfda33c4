// Package access holds the request authorization policy: the route-level role
// gate and the record-level ownership check. Everything here is a pure function
// of its arguments.
package access

import (
	"github.com/storefront/shop-api/internal/core/domain"
)

// Decision is the outcome of an access check.
type Decision uint8

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

const (
	MsgNoToken          = "Unauthorized - No token provided"
	MsgInvalidToken     = "Unauthorized - Invalid token"
	MsgInsufficientRole = "Forbidden - Insufficient permissions"
)

// Request carries everything a decision depends on. Owned marks requests that
// target a record belonging to OwnerID.
type Request struct {
	Identity  *domain.Identity
	Permitted RoleSet
	Owned     bool
	OwnerID   string
}

// Decide evaluates the gate and, for owned records, the ownership rule.
// Admins pass only when RoleAdmin is in Permitted (or Permitted is empty); the
// presets always list it.
func Decide(req Request) Decision {
	if req.Identity == nil {
		return Unauthenticated
	}
	id := *req.Identity
	if !req.Permitted.Empty() && !req.Permitted.Contains(id.Role()) {
		return Forbidden
	}
	if req.Owned && !IsOwnerOrAdmin(id, req.OwnerID) {
		return Forbidden
	}
	return Allow
}

// IsOwnerOrAdmin reports whether id may act on a record owned by ownerID.
func IsOwnerOrAdmin(id domain.Identity, ownerID string) bool {
	if id.IsAdmin {
		return true
	}
	return ownerID != "" && ownerID == id.UserID
}

// Authorize is the gate: it returns nil when the identity's role is permitted,
// or a *Denial otherwise.
func Authorize(id *domain.Identity, permitted RoleSet) error {
	switch Decide(Request{Identity: id, Permitted: permitted}) {
	case Unauthenticated:
		return &Denial{Decision: Unauthenticated, Message: MsgNoToken}
	case Forbidden:
		return &Denial{Decision: Forbidden, Message: MsgInsufficientRole}
	}
	return nil
}

// CheckOwner is the ownership check run inside a use case after the gate has
// admitted the request. resource names the record kind in the denial message,
// e.g. "orders" or "profile".
func CheckOwner(id domain.Identity, ownerID, resource string) error {
	return checkOwner(id, ownerID, "access", resource)
}

// CheckOwnerUpdate is CheckOwner for write operations.
func CheckOwnerUpdate(id domain.Identity, ownerID, resource string) error {
	return checkOwner(id, ownerID, "update", resource)
}

func checkOwner(id domain.Identity, ownerID, verb, resource string) error {
	if IsOwnerOrAdmin(id, ownerID) {
		return nil
	}
	return &Denial{
		Decision: Forbidden,
		Message:  "Forbidden - You can only " + verb + " your own " + resource,
	}
}

// OwnerFor resolves the owner recorded on a newly created resource. Non-admin
// callers always own what they create; an admin may attribute it to someone
// else, defaulting to themselves.
func OwnerFor(id domain.Identity, requested string) string {
	if id.IsAdmin && requested != "" {
		return requested
	}
	return id.UserID
}
