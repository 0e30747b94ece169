package entity

import (
	"strings"
	"time"
)

// UserProfile is a dashboard account. Email is the identity key; the
// document store keys the users collection by its lowercased form.
type UserProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	// Scope constrains portfolio visibility. Nil means global visibility.
	Scope *AccessScope `json:"scope,omitempty"`
	Phone string       `json:"phone,omitempty"`

	// PasswordHash is the bcrypt hash of the account password. Never serialized
	// in API responses.
	PasswordHash string `json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Key returns the document key for this profile.
func (u *UserProfile) Key() string {
	return strings.ToLower(strings.TrimSpace(u.Email))
}

// VisibleScope resolves the stored scope to its tagged variant. Admins and
// executives always see the whole portfolio regardless of any stored scope.
func (u *UserProfile) VisibleScope() Scope {
	if u.Role == RoleAdmin || u.Role == RoleExecutive {
		return Scope{Kind: ScopeGlobal, Type: ScopeTypeGlobal}
	}

	return u.Scope.Resolve()
}
