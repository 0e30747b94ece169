package impl

import (
	"context"
	"testing"
	"time"

	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPropertyService(repo *fakePropertyRepo, publisher *fakePublisher) *propertyService {
	return &propertyService{
		propertyRepo: repo,
		qrService:    fakeQRService{},
		publisher:    publisher,
		logger:       testLogger(),
		now:          time.Now,
	}
}

func TestCreateProperty(t *testing.T) {
	repo := newFakePropertyRepo()
	publisher := &fakePublisher{}
	srv := newPropertyService(repo, publisher)

	view, err := srv.CreateProperty(context.Background(), adminViewer(), usecase.CreatePropertyInput{
		Name:   "Dogwood Court",
		City:   "Austin",
		Region: "Southeast",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Dogwood Court", view.Name)
	// A shell with no contract facts classifies as missing data.
	assert.Equal(t, entity.StatusMissingData, view.EffectiveStatus)
	assert.Equal(t, []string{service.EventPropertyUpdated}, publisher.eventTypes())
}

func TestCreateProperty_ReadOnlyRoleForbidden(t *testing.T) {
	srv := newPropertyService(newFakePropertyRepo(), &fakePublisher{})

	_, err := srv.CreateProperty(context.Background(), readonlyViewer(), usecase.CreatePropertyInput{Name: "X"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestGetProperty_OutOfScopeReadsAsNotFound(t *testing.T) {
	p := completeProperty("p1", 200)
	p.Manager.Email = "someone-else@example.com"
	srv := newPropertyService(newFakePropertyRepo(p), &fakePublisher{})

	_, err := srv.GetProperty(context.Background(), pmViewer(), "p1")
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)

	_, err = srv.GetProperty(context.Background(), adminViewer(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}

func TestUpdateProperty_PartialFields(t *testing.T) {
	p := completeProperty("p1", 200)
	repo := newFakePropertyRepo(p)
	srv := newPropertyService(repo, &fakePublisher{})

	name := "Renamed"
	units := 9
	view, err := srv.UpdateProperty(context.Background(), adminViewer(), "p1", usecase.UpdatePropertyInput{
		Name:      &name,
		UnitCount: &units,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", view.Name)
	assert.Equal(t, 9, view.UnitCount)
	// Untouched fields survive.
	assert.Equal(t, "Otis", view.Vendor.Name)

	_, err = srv.UpdateProperty(context.Background(), adminViewer(), "p1", usecase.UpdatePropertyInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestDeleteProperty_EmitsRemovedEvent(t *testing.T) {
	repo := newFakePropertyRepo(completeProperty("p1", 200))
	publisher := &fakePublisher{}
	srv := newPropertyService(repo, publisher)

	require.NoError(t, srv.DeleteProperty(context.Background(), adminViewer(), "p1"))
	assert.Equal(t, []string{service.EventPropertyRemoved}, publisher.eventTypes())

	_, err := srv.GetProperty(context.Background(), adminViewer(), "p1")
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}

func TestSetManualStatus(t *testing.T) {
	repo := newFakePropertyRepo(completeProperty("p1", 200))
	publisher := &fakePublisher{}
	srv := newPropertyService(repo, publisher)

	view, err := srv.SetManualStatus(context.Background(), adminViewer(), "p1", usecase.SetStatusInput{
		Status: entity.StatusNoElevators.String(),
	})
	require.NoError(t, err)
	// Manual declarations pass straight through classification.
	assert.Equal(t, entity.StatusNoElevators, view.EffectiveStatus)
	assert.Equal(t, []string{service.EventStatusChanged}, publisher.eventTypes())
	require.NotNil(t, view.StatusUpdatedAt)
}

func TestSetManualStatus_RejectsDerivedStates(t *testing.T) {
	srv := newPropertyService(newFakePropertyRepo(completeProperty("p1", 200)), &fakePublisher{})

	for _, derived := range []entity.PropertyStatus{
		entity.StatusActiveContract,
		entity.StatusCancellationWindowOpen,
		entity.StatusMissingData,
	} {
		_, err := srv.SetManualStatus(context.Background(), adminViewer(), "p1", usecase.SetStatusInput{
			Status: derived.String(),
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus, derived.String())
	}

	_, err := srv.SetManualStatus(context.Background(), adminViewer(), "p1", usecase.SetStatusInput{
		Status: "made_up",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
}

func TestContacts_PrimaryStaysUnique(t *testing.T) {
	repo := newFakePropertyRepo(completeProperty("p1", 200))
	srv := newPropertyService(repo, &fakePublisher{})
	viewer := adminViewer()
	ctx := context.Background()

	first, err := srv.AddContact(ctx, viewer, "p1", usecase.ContactInput{Name: "Ann", IsPrimary: true})
	require.NoError(t, err)
	second, err := srv.AddContact(ctx, viewer, "p1", usecase.ContactInput{Name: "Bob", IsPrimary: true})
	require.NoError(t, err)

	p, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p.Contacts, 2)

	primaries := 0
	for _, c := range p.Contacts {
		if c.IsPrimary {
			primaries++
			assert.Equal(t, second.ID, c.ID)
		}
	}
	assert.Equal(t, 1, primaries)

	// Promoting the first demotes the second again.
	_, err = srv.UpdateContact(ctx, viewer, "p1", first.ID, usecase.ContactInput{Name: "Ann", IsPrimary: true})
	require.NoError(t, err)

	p, err = repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	for _, c := range p.Contacts {
		assert.Equal(t, c.ID == first.ID, c.IsPrimary)
	}
}

func TestDeleteContact(t *testing.T) {
	repo := newFakePropertyRepo(completeProperty("p1", 200))
	srv := newPropertyService(repo, &fakePublisher{})
	ctx := context.Background()

	contact, err := srv.AddContact(ctx, adminViewer(), "p1", usecase.ContactInput{Name: "Ann"})
	require.NoError(t, err)

	assert.ErrorIs(t, srv.DeleteContact(ctx, adminViewer(), "p1", "nope"), domainerrors.ErrContactNotFound)
	require.NoError(t, srv.DeleteContact(ctx, adminViewer(), "p1", contact.ID))

	p, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, p.Contacts)
}

func TestContracts_UpdateKeepsDocuments(t *testing.T) {
	p := completeProperty("p1", 200)
	repo := newFakePropertyRepo(p)
	srv := newPropertyService(repo, &fakePublisher{})
	ctx := context.Background()

	contract, err := srv.AddContract(ctx, adminViewer(), "p1", usecase.ContractInput{
		Category: "HVAC",
		Vendor:   "CoolAir",
		Cost:     480,
	})
	require.NoError(t, err)

	// Attach a document out of band, then update the contract fields.
	stored, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	stored.Contracts[0].Documents = []entity.PropertyDocument{{ID: "d1", Name: "agreement.pdf"}}
	require.NoError(t, repo.Save(ctx, stored))

	updated, err := srv.UpdateContract(ctx, adminViewer(), "p1", contract.ID, usecase.ContractInput{
		Category: "HVAC",
		Vendor:   "CoolAir",
		Cost:     520,
	})
	require.NoError(t, err)
	assert.Equal(t, 520.0, updated.Cost)
	require.Len(t, updated.Documents, 1)
	assert.Equal(t, "d1", updated.Documents[0].ID)
}

func TestGeneratePropertyTag(t *testing.T) {
	srv := newPropertyService(newFakePropertyRepo(completeProperty("p1", 200)), &fakePublisher{})

	png, err := srv.GeneratePropertyTag(context.Background(), adminViewer(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png:p1"), png)

	_, err = srv.GeneratePropertyTag(context.Background(), adminViewer(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}
