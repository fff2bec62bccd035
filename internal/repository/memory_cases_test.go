package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darman-data/internal/domain"
)

const testTenant = "9f1c2e70-4a5d-4b8e-9c3f-1d2e3a4b5c6d"

func ref(id string) sql.NullString {
	return sql.NullString{String: id, Valid: true}
}

func TestWardCaseFilterMatchesAttendingDoctorOnly(t *testing.T) {
	repo := NewMemoryWardCasesRepo()
	ctx := context.Background()

	attending := "11111111-1111-1111-1111-111111111111"
	referring := "22222222-2222-2222-2222-222222222222"

	_, err := repo.Create(ctx, &domain.WardCase{
		TenantID: testTenant,
		Number:   "1001",
		DoctorID: ref(attending),
		// the referring doctor must not pull this case into their scope
		ReferringDoctorID: ref(referring),
	})
	require.NoError(t, err)

	got, err := repo.Filter(ctx, testTenant, WardCaseFilter{DoctorID: attending})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.Filter(ctx, testTenant, WardCaseFilter{DoctorID: referring})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImportHistoryNewestFirst(t *testing.T) {
	repo := NewMemoryImportsRepo()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"first.xlsx", "second.xlsx", "third.xlsx"} {
		_, err := repo.Create(ctx, &domain.ImportFile{
			TenantID:   testTenant,
			Filename:   name,
			ImportedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	recs, err := repo.List(ctx, testTenant, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "third.xlsx", recs[0].Filename)
	assert.Equal(t, "first.xlsx", recs[2].Filename)

	recs, err = repo.List(ctx, testTenant, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "third.xlsx", recs[0].Filename)
	assert.Equal(t, "second.xlsx", recs[1].Filename)
}
