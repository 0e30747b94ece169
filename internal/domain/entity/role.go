package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin has unrestricted access including user management.
	RoleAdmin Role = "admin"
	// RoleExecutive has portfolio-wide read access.
	RoleExecutive Role = "executive"
	// RoleAreaVP oversees one or more areas.
	RoleAreaVP Role = "area_vp"
	// RoleRegionVP oversees one or more regions.
	RoleRegionVP Role = "region_vp"
	// RoleMarketManager oversees one or more markets.
	RoleMarketManager Role = "market_manager"
	// RoleRegionalPM is a regional property manager with oversight across
	// multiple properties.
	RoleRegionalPM Role = "regional_pm"
	// RolePM manages individual properties.
	RolePM Role = "pm"
	// RoleUser is the default read-only role.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleExecutive, RoleAreaVP, RoleRegionVP,
		RoleMarketManager, RoleRegionalPM, RolePM, RoleUser:
		return true
	default:
		return false
	}
}

// CanManageUsers reports whether the role may edit other users' roles and scopes.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanEditProperties reports whether the role may create or mutate property records.
func (r Role) CanEditProperties() bool {
	switch r {
	case RoleAdmin, RoleRegionalPM, RolePM, RoleMarketManager:
		return true
	default:
		return false
	}
}
