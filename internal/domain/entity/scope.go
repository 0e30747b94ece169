package entity

import (
	"slices"
	"strings"
)

// ScopeType names the stored portfolio-visibility constraint of a user.
type ScopeType string

const (
	// ScopeTypeGlobal grants unrestricted visibility.
	ScopeTypeGlobal ScopeType = "global"
	// ScopeTypeArea restricts visibility to named areas.
	ScopeTypeArea ScopeType = "area"
	// ScopeTypeRegion restricts visibility to named regions.
	ScopeTypeRegion ScopeType = "region"
	// ScopeTypeMarket restricts visibility to named markets.
	ScopeTypeMarket ScopeType = "market"
	// ScopeTypePortfolio restricts visibility to the user's own properties.
	ScopeTypePortfolio ScopeType = "portfolio"
)

// IsValid checks if the ScopeType is a valid value.
func (t ScopeType) IsValid() bool {
	switch t {
	case ScopeTypeGlobal, ScopeTypeArea, ScopeTypeRegion, ScopeTypeMarket, ScopeTypePortfolio:
		return true
	default:
		return false
	}
}

// AccessScope is the stored form of a user's visibility constraint. Values is
// the multi-select set for area/region/market scopes; empty otherwise.
type AccessScope struct {
	Type   ScopeType `json:"type"`
	Values []string  `json:"values,omitempty"`
}

// ScopeKind tags the resolved scope variant.
type ScopeKind int

const (
	// ScopeGlobal means unrestricted visibility.
	ScopeGlobal ScopeKind = iota
	// ScopeNamed means visibility limited to named hierarchy values.
	ScopeNamed
	// ScopePersonal means visibility limited to the user's own properties.
	ScopePersonal
)

// Scope is the resolved, tagged form of an AccessScope. It is derived once
// when a profile is loaded so consumers never branch on the stored shape.
type Scope struct {
	Kind   ScopeKind
	Type   ScopeType
	Values []string
}

// Resolve converts the stored scope to its tagged variant. A nil or global
// scope resolves to unrestricted visibility.
func (a *AccessScope) Resolve() Scope {
	if a == nil {
		return Scope{Kind: ScopeGlobal}
	}

	switch a.Type {
	case ScopeTypePortfolio:
		return Scope{Kind: ScopePersonal, Type: a.Type}
	case ScopeTypeArea, ScopeTypeRegion, ScopeTypeMarket:
		return Scope{Kind: ScopeNamed, Type: a.Type, Values: a.Values}
	default:
		return Scope{Kind: ScopeGlobal, Type: ScopeTypeGlobal}
	}
}

// Allows reports whether a property is visible under this scope to the user
// identified by userEmail.
func (s Scope) Allows(p *Property, userEmail string) bool {
	if p == nil {
		return false
	}

	switch s.Kind {
	case ScopeNamed:
		var field string
		switch s.Type {
		case ScopeTypeArea:
			field = p.Area
		case ScopeTypeRegion:
			field = p.Region
		case ScopeTypeMarket:
			field = p.Market
		default:
			return false
		}

		return slices.ContainsFunc(s.Values, func(v string) bool {
			return strings.EqualFold(v, field)
		})
	case ScopePersonal:
		email := strings.ToLower(userEmail)

		return strings.ToLower(p.Manager.Email) == email ||
			strings.ToLower(p.RegionalManager.Email) == email
	default:
		return true
	}
}
