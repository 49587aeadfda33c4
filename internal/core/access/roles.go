package access

import (
	"strings"

	"github.com/storefront/shop-api/internal/core/domain"
)

// RoleSet is an immutable set of roles permitted on a route. The zero value is
// the empty set, which admits any authenticated identity.
type RoleSet uint8

var (
	// AdminOnly admits administrators only.
	AdminOnly = NewRoleSet(domain.RoleAdmin)
	// UserOrAdmin admits any authenticated identity.
	UserOrAdmin = NewRoleSet(domain.RoleUser, domain.RoleAdmin)
)

// NewRoleSet builds a set from the given roles. Unknown roles are ignored.
func NewRoleSet(roles ...domain.Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= bit(r)
	}
	return s
}

// Contains reports whether r is a member of s.
func (s RoleSet) Contains(r domain.Role) bool {
	b := bit(r)
	return b != 0 && s&b != 0
}

// Empty reports whether no role was listed.
func (s RoleSet) Empty() bool {
	return s == 0
}

func (s RoleSet) String() string {
	if s.Empty() {
		return "any"
	}
	var names []string
	for _, r := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		if s.Contains(r) {
			names = append(names, r.String())
		}
	}
	return strings.Join(names, ",")
}

func bit(r domain.Role) RoleSet {
	switch r {
	case domain.RoleUser:
		return 1 << 0
	case domain.RoleAdmin:
		return 1 << 1
	default:
		return 0
	}
}
