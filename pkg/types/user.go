package types

import (
	"strings"
	"time"
)

// User roles. The role is decided at identity creation and never changes
// within a session.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// The single built-in administrator identity. Logging in with AdminEmail
// yields this fixed ID, name, and the admin role; every other email yields a
// regular user.
const (
	AdminEmail = "admin@blog.com"
	AdminID    = "admin-1"
	AdminName  = "Admin User"
)

// Social login providers accepted by the session store.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// User is the authenticated identity active for a session. Posts embed a
// snapshot copy of it at creation time; the copy is never re-synced.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NameFromEmail derives a display name from the local part of an email
// address (the substring before the first "@"). An address without "@"
// is returned unchanged.
func NameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
