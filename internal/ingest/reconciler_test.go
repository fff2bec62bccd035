package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darman-data/internal/repository"
)

const testTenant = "11111111-1111-1111-1111-111111111111"

func TestReconcileCreatesEntitiesAndAssociations(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	merged := NewExtraction()
	merged.Merge(ExtractSheet(wardSheet(), ClassWard))
	merged.Merge(ExtractSheet(roomSheet(), ClassRoom))

	require.NoError(t, NewReconciler(repos).Reconcile(ctx, testTenant, merged))

	wards, err := repos.Wards.List(ctx, testTenant, "", 0)
	require.NoError(t, err)
	assert.Len(t, wards, 2)

	rooms, err := repos.Rooms.List(ctx, testTenant, "", 0)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	doctor, err := repos.Doctors.FindByName(ctx, testTenant, "دکتر احمدی")
	require.NoError(t, err)
	require.NotNil(t, doctor)

	ward, err := repos.Wards.FindByName(ctx, testTenant, "داخلی")
	require.NoError(t, err)
	require.NotNil(t, ward)

	wardDoctors, err := repos.Doctors.ListByWard(ctx, testTenant, ward.WardID)
	require.NoError(t, err)
	assert.Len(t, wardDoctors, 2) // احمدی and رضوی

	roomDoctors, err := repos.Doctors.ListByRoom(ctx, testTenant, rooms[0].RoomID)
	require.NoError(t, err)
	require.Len(t, roomDoctors, 1)
	assert.Equal(t, "دکتر موسوی", roomDoctors[0].FullName)

	n, err := repos.Patients.CountByRoom(ctx, testTenant, rooms[0].RoomID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReconcileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	merged := NewExtraction()
	merged.Merge(ExtractSheet(wardSheet(), ClassWard))

	r := NewReconciler(repos)
	require.NoError(t, r.Reconcile(ctx, testTenant, merged))
	require.NoError(t, r.Reconcile(ctx, testTenant, merged))

	wards, err := repos.Wards.List(ctx, testTenant, "", 0)
	require.NoError(t, err)
	assert.Len(t, wards, 2)

	doctors, err := repos.Doctors.List(ctx, testTenant, "", 0)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)

	patients, err := repos.Patients.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 2, patients)
}

func TestReconcileTenantIsolation(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	merged := NewExtraction()
	merged.Merge(ExtractSheet(wardSheet(), ClassWard))
	require.NoError(t, NewReconciler(repos).Reconcile(ctx, testTenant, merged))

	other := "22222222-2222-2222-2222-222222222222"
	n, err := repos.Wards.Count(ctx, other)
	require.NoError(t, err)
	assert.Zero(t, n)
}
