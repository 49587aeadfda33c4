package domain

// Role is the coarse permission class of a caller. The set is closed: every
// Identity maps to exactly one of RoleUser or RoleAdmin.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Identity is the verified caller attached to a request by the token verifier.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// Role derives the caller's role from the admin flag.
func (i Identity) Role() Role {
	if i.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
