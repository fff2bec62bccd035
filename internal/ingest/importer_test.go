package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"darman-data/internal/repository"
)

func testWorkbook() *MemoryWorkbook {
	ward := wardSheet()
	room := roomSheet()
	death := deathSheet()
	return &MemoryWorkbook{
		Order: []string{ward.Name, room.Name, death.Name, "notes"},
		Sheets: map[string][][]string{
			ward.Name:  append([][]string{ward.Header}, ward.Rows...),
			room.Name:  append([][]string{room.Header}, room.Rows...),
			death.Name: append([][]string{death.Header}, death.Rows...),
			"notes":    {{"یادداشت"}},
		},
	}
}

func TestImporterRun(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	report, err := NewImporter(repos, zap.NewNop()).Run(ctx, testTenant, "archive.xlsx", testWorkbook())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.ImportID)
	assert.Equal(t, "archive.xlsx", report.Filename)
	assert.Equal(t, 4, report.Cases) // 2 ward + 1 room + 1 death
	require.Len(t, report.Sheets, 3) // "notes" is ignored, not reported

	wardCount, err := repos.WardCases.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 2, wardCount)

	opCount, err := repos.OperationCases.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 1, opCount)

	deathCount, err := repos.DeathCases.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 1, deathCount)

	imports, err := repos.Imports.List(ctx, testTenant, 10)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "archive.xlsx", imports[0].Filename)

	// cases built against reconciled entities carry resolved references
	cases, err := repos.WardCases.Filter(ctx, testTenant, repository.WardCaseFilter{})
	require.NoError(t, err)
	assert.True(t, cases[0].WardID.Valid)
	assert.True(t, cases[0].DoctorID.Valid)
}

func TestImporterDualMarkerSheetFeedsBothPipelines(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	ward := wardSheet()
	wb := &MemoryWorkbook{
		Order: []string{"section-dc"},
		Sheets: map[string][][]string{
			"section-dc": append([][]string{ward.Header}, ward.Rows...),
		},
	}

	report, err := NewImporter(repos, zap.NewNop()).Run(ctx, testTenant, "archive.xlsx", wb)
	require.NoError(t, err)

	// one report entry per matching class
	require.Len(t, report.Sheets, 2)
	assert.Equal(t, "ward", report.Sheets[0].Class)
	assert.Equal(t, "death", report.Sheets[1].Class)

	// ward rows carry the "P" marker; none carries "U", so the death pass
	// contributes nothing
	assert.Equal(t, 2, report.Sheets[0].Created)
	assert.Equal(t, 0, report.Sheets[1].Created)

	deathCount, err := repos.DeathCases.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 0, deathCount)

	wardCount, err := repos.WardCases.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 2, wardCount)
}

func TestImporterUnreadableSheetSkipsNotAborts(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	wb := testWorkbook()
	wb.Order = append(wb.Order, "section-broken") // classified but unreadable

	report, err := NewImporter(repos, zap.NewNop()).Run(ctx, testTenant, "archive.xlsx", wb)
	require.NoError(t, err)

	require.Len(t, report.Sheets, 4)
	var broken *SheetReport
	for i := range report.Sheets {
		if report.Sheets[i].Sheet == "section-broken" {
			broken = &report.Sheets[i]
		}
	}
	require.NotNil(t, broken)
	assert.True(t, broken.Skipped)
	assert.NotEmpty(t, broken.Reason)

	// the healthy sheets still import in full
	assert.Equal(t, 4, report.Cases)
}

func TestImporterEmptyWorkbook(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	report, err := NewImporter(repos, zap.NewNop()).Run(ctx, testTenant, "empty.xlsx", &MemoryWorkbook{})
	require.NoError(t, err)
	assert.Zero(t, report.Cases)
	assert.Empty(t, report.Sheets)
	assert.NotEmpty(t, report.ImportID)
}

func TestImporterReplayAddsNoEntities(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepos()
	im := NewImporter(repos, zap.NewNop())

	_, err := im.Run(ctx, testTenant, "archive.xlsx", testWorkbook())
	require.NoError(t, err)
	_, err = im.Run(ctx, testTenant, "archive.xlsx", testWorkbook())
	require.NoError(t, err)

	doctors, err := repos.Doctors.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 3, doctors) // احمدی، رضوی، موسوی

	// cases are append-only; a replay doubles them
	wardCount, err := repos.WardCases.Count(ctx, testTenant)
	require.NoError(t, err)
	assert.Equal(t, 4, wardCount)
}
