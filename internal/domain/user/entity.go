package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, can process HR-submitted requests
	RoleHR       Role = "hr"       // Manages employees, attendance, leave and payroll
	RoleEmployee Role = "employee" // Self-service only
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleEmployee
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	EmployeeID      *string
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if user is HR or admin
func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// CanApprove checks if user can process requests at all
func (u *User) CanApprove() bool {
	return u.IsHR()
}
