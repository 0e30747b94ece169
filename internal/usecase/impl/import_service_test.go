package impl

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/infra/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportService(repo *fakePropertyRepo, importer *fakeImporter) *importService {
	return &importService{
		propertyRepo: repo,
		importer:     importer,
		codec:        spreadsheet.NewCodec(),
		logger:       testLogger(),
		now:          time.Now,
	}
}

const importSheet = `Building Name,Region,Manager Name,Manager Email,Regional Manager Name,Regional Manager Email,Unit Count,Service Provider
Alder House,Southeast,Pat Miller,pat@example.com,Robin Hale,robin@example.com,2,Otis
Birch Tower,Southeast,Sam Ortiz,sam@example.com,Robin Hale,robin@example.com,6,Schindler
Cedar Plaza,Gulf Coast,Pat Miller,pat@example.com,Robin Hale,ROBIN@example.com,4,Otis
`

func TestImportPortfolio(t *testing.T) {
	importer := &fakeImporter{}
	srv := newImportService(newFakePropertyRepo(), importer)

	summary, err := srv.ImportPortfolio(context.Background(), adminViewer(), strings.NewReader(importSheet))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Properties)
	assert.Equal(t, 3, summary.DerivedUsers)
	assert.Equal(t, 6, summary.Written)

	require.Len(t, importer.batches, 1)
	batch := importer.batches[0]

	for _, p := range batch.Properties {
		assert.NotEmpty(t, p.ID)
	}

	byEmail := make(map[string]*entity.UserProfile)
	for _, u := range batch.Users {
		byEmail[u.Email] = u
	}

	pat := byEmail["pat@example.com"]
	require.NotNil(t, pat)
	assert.Equal(t, entity.RolePM, pat.Role)
	require.NotNil(t, pat.Scope)
	assert.Equal(t, entity.ScopeTypePortfolio, pat.Scope.Type)

	// The RPM's region scope accumulates across rows, case-insensitively.
	robin := byEmail["robin@example.com"]
	require.NotNil(t, robin)
	assert.Equal(t, entity.RoleRegionalPM, robin.Role)
	require.NotNil(t, robin.Scope)
	assert.Equal(t, entity.ScopeTypeRegion, robin.Scope.Type)
	assert.ElementsMatch(t, []string{"Southeast", "Gulf Coast"}, robin.Scope.Values)
}

func TestImportPortfolio_AdminOnly(t *testing.T) {
	srv := newImportService(newFakePropertyRepo(), &fakeImporter{})

	_, err := srv.ImportPortfolio(context.Background(), pmViewer(), strings.NewReader(importSheet))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestImportPortfolio_BadSheets(t *testing.T) {
	srv := newImportService(newFakePropertyRepo(), &fakeImporter{})

	_, err := srv.ImportPortfolio(context.Background(), adminViewer(),
		strings.NewReader("Address,City\n1 Main St,Austin\n"))
	assert.ErrorIs(t, err, domainerrors.ErrImportHeaderMismatch)

	_, err = srv.ImportPortfolio(context.Background(), adminViewer(),
		strings.NewReader("Building Name,City\n"))
	assert.ErrorIs(t, err, domainerrors.ErrImportEmpty)
}

func TestImportPortfolio_BatchErrorPropagates(t *testing.T) {
	importer := &fakeImporter{fail: domainerrors.ErrImportTooLarge}
	srv := newImportService(newFakePropertyRepo(), importer)

	_, err := srv.ImportPortfolio(context.Background(), adminViewer(), strings.NewReader(importSheet))
	assert.ErrorIs(t, err, domainerrors.ErrImportTooLarge)
}

func TestWriteTemplate(t *testing.T) {
	srv := newImportService(newFakePropertyRepo(), &fakeImporter{})

	var buf bytes.Buffer
	require.NoError(t, srv.WriteTemplate(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "Building Name,"))
}

func TestExportPortfolio_ScopedToViewer(t *testing.T) {
	mine := completeProperty("p1", 200)
	mine.Manager.Email = "pm@example.com"
	other := completeProperty("p2", 200)
	other.Name = "Birch Tower"
	other.Manager.Email = "someone-else@example.com"
	other.RegionalManager.Email = "someone-else@example.com"

	srv := newImportService(newFakePropertyRepo(mine, other), &fakeImporter{})

	var buf bytes.Buffer
	require.NoError(t, srv.ExportPortfolio(context.Background(), pmViewer(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Building p1")
	assert.NotContains(t, out, "Birch Tower")
}

func TestClearPortfolio(t *testing.T) {
	importer := &fakeImporter{}
	srv := newImportService(newFakePropertyRepo(), importer)

	_, err := srv.ClearPortfolio(context.Background(), pmViewer())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Zero(t, importer.cleared)

	removed, err := srv.ClearPortfolio(context.Background(), adminViewer())
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
	assert.Equal(t, 1, importer.cleared)
}
