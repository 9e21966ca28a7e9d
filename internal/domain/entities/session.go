package entities

// RoleAdmin is the role marker that grants access to the admin views.
const RoleAdmin = "admin"

// User is the profile returned with a login.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminSession is the authenticated identity held by the client.
type AdminSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s AdminSession) IsAdmin() bool {
	return s.User.Role == RoleAdmin
}

// Admin is a back-office account stored by the site backend.
type Admin struct {
	ID           uint
	Email        string
	Name         string
	Role         string
	PasswordHash string
}
