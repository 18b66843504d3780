package domain

import (
	"strings"
	"time"
)

// RoleAdmin is the only role this system models.
const RoleAdmin = "admin"

// AdminUser is an administrator account. Passwords are stored as salted
// bcrypt hashes, never plaintext.
type AdminUser struct {
	ID           string
	Email        string // stored lower-cased
	PasswordHash string
	Role         string

	// TOTP second factor, optional.
	MFAEnabled *time.Time
	MFASecret  *string // base32 encoded

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MFAActive reports whether the account requires a TOTP code at login.
func (a AdminUser) MFAActive() bool {
	return a.MFAEnabled != nil && a.MFASecret != nil && *a.MFASecret != ""
}

// NormalizeEmail case-normalizes an email for exact lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session identifies the authenticated caller of a store operation. Passing
// it explicitly, rather than holding ambient login state, lets the service
// layer enforce authorization deterministically.
type Session struct {
	AdminID string
	Email   string
	Role    string
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.AdminID != "" && s.Role == RoleAdmin
}
