package impl

import (
	"context"
	"testing"
	"time"

	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortfolioService(repo *fakePropertyRepo) *portfolioService {
	return &portfolioService{
		propertyRepo: repo,
		logger:       testLogger(),
		now:          time.Now,
	}
}

func seedPortfolio() *fakePropertyRepo {
	east := completeProperty("p1", 200)
	east.Name = "Alder House"
	east.Region = "Southeast"
	east.UnitCount = 2
	east.Manager.Email = "pm@example.com"

	west := completeProperty("p2", 200)
	west.Name = "Birch Tower"
	west.Region = "Northwest"
	west.UnitCount = 6
	west.Vendor.Name = "Schindler"

	central := completeProperty("p3", 200)
	central.Name = "Cedar Plaza"
	central.Region = "Southeast"
	central.UnitCount = 4

	return newFakePropertyRepo(east, west, central)
}

func TestListPortfolio_ScopeFiltering(t *testing.T) {
	srv := newPortfolioService(seedPortfolio())

	page, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	regionViewer := &entity.UserProfile{
		Email: "rvp@example.com",
		Role:  entity.RoleRegionVP,
		Scope: &entity.AccessScope{Type: entity.ScopeTypeRegion, Values: []string{"Southeast"}},
	}
	page, err = srv.ListPortfolio(context.Background(), regionViewer, usecase.GridQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, v := range page.Items {
		assert.Equal(t, "Southeast", v.Region)
	}

	page, err = srv.ListPortfolio(context.Background(), pmViewer(), usecase.GridQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "p1", page.Items[0].ID)
}

func TestListPortfolio_Search(t *testing.T) {
	srv := newPortfolioService(seedPortfolio())

	page, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{Search: "birch"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Birch Tower", page.Items[0].Name)

	// Vendor name is searchable too.
	page, err = srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{Search: "schindler"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "p2", page.Items[0].ID)
}

func TestListPortfolio_Filters(t *testing.T) {
	srv := newPortfolioService(seedPortfolio())

	page, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{
		Filters: map[string][]string{"region": {"southeast"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	// Options are computed before filters narrow the set, so the other
	// region stays offered.
	assert.ElementsMatch(t, []string{"Northwest", "Southeast"}, page.FilterOptions["region"])
}

func TestListPortfolio_SortAndPage(t *testing.T) {
	srv := newPortfolioService(seedPortfolio())

	page, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{
		Sort:     []usecase.SortKey{{Field: "unitCount", Desc: true}},
		Page:     0,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 6, page.Items[0].UnitCount)
	assert.Equal(t, 4, page.Items[1].UnitCount)

	page, err = srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{
		Sort:     []usecase.SortKey{{Field: "unitCount", Desc: true}},
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Items[0].UnitCount)

	// A page past the end is empty, not an error.
	page, err = srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{
		Page:     9,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListPortfolio_DefaultSortIsDeterministic(t *testing.T) {
	srv := newPortfolioService(seedPortfolio())

	first, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{})
	require.NoError(t, err)
	second, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{})
	require.NoError(t, err)

	require.Len(t, first.Items, 3)
	assert.Equal(t, "Alder House", first.Items[0].Name)
	for i := range first.Items {
		assert.Equal(t, first.Items[i].ID, second.Items[i].ID)
	}
}

func TestListPortfolio_DerivedStatusOnEveryRow(t *testing.T) {
	stale := completeProperty("p9", 200)
	stale.Vendor.Name = "" // vendor missing

	srv := newPortfolioService(newFakePropertyRepo(stale))

	page, err := srv.ListPortfolio(context.Background(), adminViewer(), usecase.GridQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, entity.StatusMissingData, page.Items[0].EffectiveStatus)
}
