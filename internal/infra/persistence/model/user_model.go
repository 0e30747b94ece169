package model

import (
	"time"

	"vendorwatch/internal/domain/entity"
)

// ScopeModel is the stored form of an access scope.
type ScopeModel struct {
	Type   string   `firestore:"type"`
	Values []string `firestore:"values"`
}

// UserModel is the stored form of a user profile. The document ID is the
// lowercased email address.
type UserModel struct {
	Email        string      `firestore:"email"`
	Name         string      `firestore:"name"`
	Role         string      `firestore:"role"`
	Scope        *ScopeModel `firestore:"scope"`
	Phone        string      `firestore:"phone"`
	PasswordHash string      `firestore:"passwordHash"`
	LastLogin    *time.Time  `firestore:"lastLogin"`
	CreatedAt    time.Time   `firestore:"createdAt"`
	UpdatedAt    time.Time   `firestore:"updatedAt"`
}

// FromUserDomain maps a pure domain entity to its stored form.
func FromUserDomain(u *entity.UserProfile) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role.String(),
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Scope != nil {
		m.Scope = &ScopeModel{
			Type:   string(u.Scope.Type),
			Values: u.Scope.Values,
		}
	}

	return m
}

// ToUserDomain maps a stored document back to a pure domain entity.
func ToUserDomain(m *UserModel) *entity.UserProfile {
	u := &entity.UserProfile{
		Email:        m.Email,
		Name:         m.Name,
		Role:         entity.Role(m.Role),
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Scope != nil {
		u.Scope = &entity.AccessScope{
			Type:   entity.ScopeType(m.Scope.Type),
			Values: m.Scope.Values,
		}
	}

	return u
}
