package domain

import "time"

// AdminRole represents the privilege level of an admin user.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "superadmin"
	AdminRoleStaff      AdminRole = "staff"
)

// ParseAdminRole validates a raw role string.
func ParseAdminRole(s string) (AdminRole, bool) {
	switch AdminRole(s) {
	case AdminRoleSuperAdmin, AdminRoleStaff:
		return AdminRole(s), true
	default:
		return "", false
	}
}

// AdminUser is an operator permitted to view and mutate bookings.
// PasswordHash is a bcrypt hash, never the plain password.
type AdminUser struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
}
