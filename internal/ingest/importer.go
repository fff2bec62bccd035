package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"darman-data/internal/domain"
	"darman-data/internal/repository"
)

// Importer runs the whole two-pass pipeline over one workbook. Pass one
// collects and reconciles entity identities across every recognized sheet;
// pass two builds cases row by row against the reconciled entities. Sheet
// and row failures degrade to skip records, never to an aborted import.
type Importer struct {
	repos  *repository.Repos
	logger *zap.Logger
}

func NewImporter(repos *repository.Repos, logger *zap.Logger) *Importer {
	return &Importer{repos: repos, logger: logger}
}

// Run imports a workbook for one tenant and records the upload. The report
// carries one entry per recognized sheet; unrecognized sheets are ignored
// silently, a workbook with no recognized sheets yields an empty report.
func (im *Importer) Run(ctx context.Context, tenantID, filename string, wb Workbook) (*ImportReport, error) {
	report := &ImportReport{Filename: filename}

	type classified struct {
		sheet *Sheet
		class SheetClass
	}
	var sheets []classified

	merged := NewExtraction()
	for _, name := range wb.SheetNames() {
		classes := Classify(name)
		if len(classes) == 0 {
			continue
		}
		s, err := LoadSheet(wb, name)
		if err != nil {
			im.logger.Warn("Skipping unreadable sheet",
				zap.String("sheet", name),
				zap.Error(err))
			for _, class := range classes {
				report.Sheets = append(report.Sheets, SheetReport{
					Sheet:   name,
					Class:   class.String(),
					Skipped: true,
					Reason:  err.Error(),
				})
			}
			continue
		}
		for _, class := range classes {
			sheets = append(sheets, classified{sheet: s, class: class})
			merged.Merge(ExtractSheet(s, class))
		}
	}

	reconciler := NewReconciler(im.repos)
	if err := reconciler.Reconcile(ctx, tenantID, merged); err != nil {
		return nil, err
	}

	builder := NewCaseBuilder(im.repos, im.logger)
	for _, c := range sheets {
		sr := builder.BuildSheet(ctx, tenantID, c.sheet, c.class)
		report.Cases += sr.Created
		report.Sheets = append(report.Sheets, sr)
	}

	rec := &domain.ImportFile{
		TenantID:   tenantID,
		Filename:   filename,
		ImportedAt: time.Now().UTC(),
	}
	importID, err := im.repos.Imports.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	report.ImportID = importID

	im.logger.Info("Workbook imported",
		zap.String("tenant_id", tenantID),
		zap.String("filename", filename),
		zap.String("import_id", importID),
		zap.Int("cases", report.Cases),
		zap.Int("sheets", len(report.Sheets)))
	return report, nil
}
