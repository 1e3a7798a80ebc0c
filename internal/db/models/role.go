package models

// Role is the classification a user picks at first login.
// The set is closed and a user's role never changes after creation.
type Role string

const (
	// RoleStudent is a participant.
	RoleStudent Role = "student"
	// RoleExpert is a mentor or judge.
	RoleExpert Role = "expert"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleStudent, RoleExpert} //nolint:gochecknoglobals

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleExpert:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
