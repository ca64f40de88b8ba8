package constants

import "strings"

// Role is the closed set of account roles. Every branch that switches on a
// role must handle all of these values.
type Role string

const (
	RoleStudent  Role = "Student"
	RoleTeacher  Role = "Teacher"
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleAccounts Role = "Accounts"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleManager, RoleAccounts:
		return true
	default:
		return false
	}
}

// Staff reports whether the role carries staff privilege by default.
// Students are the only non-staff role.
func (r Role) Staff() bool {
	switch r {
	case RoleTeacher, RoleAdmin, RoleManager, RoleAccounts:
		return true
	case RoleStudent:
		return false
	default:
		return false
	}
}

// ParseRole maps free-form input onto the closed role set; invalid input
// yields a Role for which Valid() is false.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return RoleStudent
	case "teacher":
		return RoleTeacher
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "accounts":
		return RoleAccounts
	default:
		return Role(s)
	}
}

var (
	AllRoles = []Role{
		RoleStudent,
		RoleTeacher,
		RoleAdmin,
		RoleManager,
		RoleAccounts,
	}

	StaffRoles = []Role{
		RoleTeacher,
		RoleAdmin,
		RoleManager,
		RoleAccounts,
	}
)

const (
	ErrOnlyStaffCanAccess  = "Only staff members may access this resource."
	ErrOnlyAdminsCanAccess = "Only admins may access this resource."
)
