package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessScope_Resolve(t *testing.T) {
	var nilScope *AccessScope
	assert.Equal(t, ScopeGlobal, nilScope.Resolve().Kind)

	global := &AccessScope{Type: ScopeTypeGlobal}
	assert.Equal(t, ScopeGlobal, global.Resolve().Kind)

	named := &AccessScope{Type: ScopeTypeRegion, Values: []string{"Southeast", "Midwest"}}
	resolved := named.Resolve()
	assert.Equal(t, ScopeNamed, resolved.Kind)
	assert.Equal(t, ScopeTypeRegion, resolved.Type)
	assert.Len(t, resolved.Values, 2)

	personal := &AccessScope{Type: ScopeTypePortfolio}
	assert.Equal(t, ScopePersonal, personal.Resolve().Kind)
}

func TestScope_Allows_Named(t *testing.T) {
	p := &Property{Area: "East", Region: "Southeast", Market: "Atlanta"}

	region := (&AccessScope{Type: ScopeTypeRegion, Values: []string{"southeast"}}).Resolve()
	assert.True(t, region.Allows(p, "pm@example.com"), "region match is case-insensitive")

	market := (&AccessScope{Type: ScopeTypeMarket, Values: []string{"Nashville"}}).Resolve()
	assert.False(t, market.Allows(p, "pm@example.com"))

	area := (&AccessScope{Type: ScopeTypeArea, Values: []string{"East", "West"}}).Resolve()
	assert.True(t, area.Allows(p, "pm@example.com"))
}

func TestScope_Allows_Personal(t *testing.T) {
	p := &Property{
		Manager:         Personnel{Email: "Manager@Example.com"},
		RegionalManager: Personnel{Email: "rpm@example.com"},
	}

	scope := (&AccessScope{Type: ScopeTypePortfolio}).Resolve()
	assert.True(t, scope.Allows(p, "manager@example.com"))
	assert.True(t, scope.Allows(p, "rpm@example.com"))
	assert.False(t, scope.Allows(p, "other@example.com"))
}

func TestUserProfile_VisibleScope_AdminOverridesStoredScope(t *testing.T) {
	admin := &UserProfile{
		Email: "admin@example.com",
		Role:  RoleAdmin,
		Scope: &AccessScope{Type: ScopeTypeMarket, Values: []string{"Atlanta"}},
	}

	assert.Equal(t, ScopeGlobal, admin.VisibleScope().Kind)

	pm := &UserProfile{
		Email: "pm@example.com",
		Role:  RolePM,
		Scope: &AccessScope{Type: ScopeTypePortfolio},
	}
	assert.Equal(t, ScopePersonal, pm.VisibleScope().Kind)
}
