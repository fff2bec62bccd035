package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"darman-data/internal/domain"
	"darman-data/internal/repository"
	"darman-data/internal/store"
)

const testTenant = "11111111-1111-1111-1111-111111111111"

func ref(id string) sql.NullString {
	return sql.NullString{String: id, Valid: true}
}

func newStatsService() (*StatsService, *repository.Repos, *store.MemoryKV) {
	repos := repository.NewMemoryRepos()
	kv := store.NewMemoryKV()
	return NewStatsService(repos, kv, zap.NewNop()), repos, kv
}

func TestStatsServiceWindowParsing(t *testing.T) {
	s, _, _ := newStatsService()

	w, err := s.Window("", "")
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = s.Window("1402/01/01", "1402/06/01")
	require.NoError(t, err)
	require.NotNil(t, w)

	// a lone bound does not window
	w, err = s.Window("1402/01/01", "")
	require.NoError(t, err)
	assert.Nil(t, w)
	w, err = s.Window("", "1402/06/01")
	require.NoError(t, err)
	assert.Nil(t, w)

	_, err = s.Window("1402/01/01", "garbage")
	assert.Error(t, err)
}

func TestStatsServiceCachesOverview(t *testing.T) {
	ctx := context.Background()
	s, repos, kv := newStatsService()

	_, err := repos.Wards.GetOrCreate(ctx, testTenant, "داخلی")
	require.NoError(t, err)

	o, err := s.Overview(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Wards)

	// the second read is served from cache and misses the new ward
	_, err = repos.Wards.GetOrCreate(ctx, testTenant, "جراحی")
	require.NoError(t, err)

	o, err = s.Overview(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Wards)

	// invalidation is what imports do; the next read recomputes
	require.NoError(t, kv.DeletePrefix(ctx, statsCachePrefix(testTenant)))
	o, err = s.Overview(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 2, o.Wards)
}

func TestStatsServiceCacheKeysPerWindow(t *testing.T) {
	ctx := context.Background()
	s, repos, _ := newStatsService()

	ward, err := repos.Wards.GetOrCreate(ctx, testTenant, "داخلی")
	require.NoError(t, err)
	_, err = repos.WardCases.Create(ctx, &domain.WardCase{
		TenantID:      testTenant,
		Number:        "100",
		AdmissionDate: "1402/01/10",
		WardID:        ref(ward.WardID),
	})
	require.NoError(t, err)

	unwindowed, err := s.Ward(ctx, testTenant, ward.WardID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, unwindowed.Cases)

	w, err := s.Window("1403/01/01", "1403/06/01")
	require.NoError(t, err)
	windowed, err := s.Ward(ctx, testTenant, ward.WardID, w)
	require.NoError(t, err)
	// the windowed bundle is computed on its own key, not served from the
	// unwindowed entry
	assert.Zero(t, windowed.Cases)
}

func TestStatsServiceBatchedScopes(t *testing.T) {
	ctx := context.Background()
	s, repos, _ := newStatsService()

	w1, err := repos.Wards.GetOrCreate(ctx, testTenant, "داخلی")
	require.NoError(t, err)
	w2, err := repos.Wards.GetOrCreate(ctx, testTenant, "جراحی")
	require.NoError(t, err)

	bundles, err := s.Wards(ctx, testTenant, []string{w1.WardID, w2.WardID}, nil)
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, "داخلی", bundles[0].Name)
	assert.Equal(t, "جراحی", bundles[1].Name)

	_, err = s.Wards(ctx, testTenant, []string{"33333333-3333-3333-3333-333333333333"}, nil)
	assert.Error(t, err)
}
