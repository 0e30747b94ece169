package impl

import (
	"context"
	"testing"
	"time"

	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/status"
	"vendorwatch/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizardService(repo *fakePropertyRepo, publisher *fakePublisher, now time.Time) *wizardService {
	return &wizardService{
		propertyRepo: repo,
		publisher:    publisher,
		logger:       testLogger(),
		now:          func() time.Time { return now },
	}
}

// validState satisfies every wizard step.
func validState() *usecase.WizardState {
	return &usecase.WizardState{
		VendorName:         "Otis",
		VendorRating:       7,
		AccountNumber:      "ACC-100",
		UnitCount:          4,
		CurrentPrice:       1250,
		BillingFrequency:   "monthly",
		StartDate:          "2020-01-15",
		InitialTermMonths:  60,
		RenewalTermMonths:  12,
		AutoRenew:          true,
		CancellationWindow: "120 - 90 Days",
	}
}

func TestWizardSteps(t *testing.T) {
	srv := newWizardService(newFakePropertyRepo(), &fakePublisher{}, time.Now())

	steps := srv.Steps()
	require.Len(t, steps, 10)
	for i, step := range steps {
		assert.Equal(t, i, step.Index)
		assert.NotEmpty(t, step.Name)
		assert.NotEmpty(t, step.Title)
	}
	assert.Equal(t, "vendor", steps[0].Name)
	assert.Equal(t, "review", steps[9].Name)
}

func TestCheckStep(t *testing.T) {
	srv := newWizardService(newFakePropertyRepo(), &fakePublisher{}, time.Now())

	t.Run("complete state advances every step", func(t *testing.T) {
		state := validState()
		for i := range srv.Steps() {
			check := srv.CheckStep(i, state)
			assert.True(t, check.CanAdvance, "step %d", i)
			assert.Empty(t, check.Missing, "step %d", i)
		}
	})

	t.Run("missing fields are named", func(t *testing.T) {
		state := validState()
		state.VendorName = ""
		check := srv.CheckStep(0, state)
		assert.False(t, check.CanAdvance)
		assert.Equal(t, []string{"vendor_name"}, check.Missing)

		state = validState()
		state.StartDate = "not a date"
		state.InitialTermMonths = 0
		check = srv.CheckStep(5, state)
		assert.False(t, check.CanAdvance)
		assert.Equal(t, []string{"start_date", "initial_term_months"}, check.Missing)
	})

	t.Run("unrated vendor does not pass the rating step", func(t *testing.T) {
		state := validState()
		state.VendorRating = 0
		check := srv.CheckStep(1, state)
		assert.False(t, check.CanAdvance)
		assert.Equal(t, []string{"vendor_rating"}, check.Missing)

		state.VendorRating = 11
		assert.False(t, srv.CheckStep(1, state).CanAdvance)

		state.VendorRating = 1
		assert.True(t, srv.CheckStep(1, state).CanAdvance)
	})

	t.Run("renewal term only required when auto-renewing", func(t *testing.T) {
		state := validState()
		state.AutoRenew = false
		state.RenewalTermMonths = 0
		assert.True(t, srv.CheckStep(6, state).CanAdvance)

		state.AutoRenew = true
		assert.False(t, srv.CheckStep(6, state).CanAdvance)
	})

	t.Run("out of range steps never advance", func(t *testing.T) {
		assert.False(t, srv.CheckStep(-1, validState()).CanAdvance)
		assert.False(t, srv.CheckStep(10, validState()).CanAdvance)
		assert.False(t, srv.CheckStep(0, nil).CanAdvance)
	})
}

func TestCompleteWizard(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	repo := newFakePropertyRepo(completeProperty("p1", 200))
	publisher := &fakePublisher{}
	srv := newWizardService(repo, publisher, now)

	state := validState()
	state.PrimaryContact = &usecase.ContactInput{Name: "Ann", Email: "ann@example.com"}

	out, err := srv.Complete(context.Background(), adminViewer(), "p1", state)
	require.NoError(t, err)

	// Start 2020-01-15 plus 60 months ends 2025-01-15; two 12-month renewals
	// roll it past 2026-03-10.
	assert.Equal(t, "01-15-2027", out.ComputedEnd)
	assert.Equal(t, 2, out.RenewalsRolled)

	p, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingReview, p.Status)
	require.NotNil(t, p.StatusUpdatedAt)
	assert.Equal(t, "Otis", p.Vendor.Name)
	assert.Equal(t, 60, p.Terms.InitialTermMonths)
	require.Len(t, p.Contacts, 1)
	assert.True(t, p.Contacts[0].IsPrimary)

	assert.Len(t, publisher.events, 1)
	// Classification still runs on the returned view despite the stored marker.
	assert.Equal(t, status.Classify(p, now), out.Property.EffectiveStatus)
}

func TestCompleteWizard_IncompleteStateRejected(t *testing.T) {
	srv := newWizardService(newFakePropertyRepo(completeProperty("p1", 200)), &fakePublisher{}, time.Now())

	state := validState()
	state.CancellationWindow = "per contract"

	_, err := srv.Complete(context.Background(), adminViewer(), "p1", state)
	require.ErrorIs(t, err, domainerrors.ErrWizardStepIncomplete)

	_, err = srv.Complete(context.Background(), adminViewer(), "p1", nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.Complete(context.Background(), readonlyViewer(), "p1", validState())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProjectEnd(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("no auto renew keeps the initial end", func(t *testing.T) {
		end, rolled := projectEnd(start, 60, 12, false, today)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), end)
		assert.Zero(t, rolled)
	})

	t.Run("rolls whole renewal terms past today", func(t *testing.T) {
		end, rolled := projectEnd(start, 60, 12, true, today)
		assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), end)
		assert.Equal(t, 2, rolled)
	})

	t.Run("future end does not roll", func(t *testing.T) {
		end, rolled := projectEnd(today.AddDate(0, -1, 0), 24, 12, true, today)
		assert.Equal(t, today.AddDate(0, 23, 0), end)
		assert.Zero(t, rolled)
	})

	t.Run("roll count is capped", func(t *testing.T) {
		ancient := time.Date(1901, 1, 1, 0, 0, 0, 0, time.UTC)
		_, rolled := projectEnd(ancient, 12, 12, true, today)
		assert.Equal(t, maxRenewalRolls, rolled)
	})
}
