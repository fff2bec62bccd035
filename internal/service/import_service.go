package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"darman-data/internal/ingest"
	"darman-data/internal/repository"
	"darman-data/internal/store"
)

// ImportRecord is one entry of the upload history.
type ImportRecord struct {
	ImportID   string    `json:"import_id"`
	Filename   string    `json:"filename"`
	ImportedAt time.Time `json:"imported_at"`
}

// ImportService runs workbook imports and the bookkeeping around them:
// cache invalidation for the tenant's statistics and the optional webhook
// notification.
type ImportService struct {
	repos  *repository.Repos
	kv     store.KV
	notify *NotifyClient
	logger *zap.Logger
}

func NewImportService(repos *repository.Repos, kv store.KV, notify *NotifyClient, logger *zap.Logger) *ImportService {
	return &ImportService{repos: repos, kv: kv, notify: notify, logger: logger}
}

// Import ingests one uploaded workbook for a tenant. The returned report is
// complete even when sheets or rows were skipped; only failures around the
// workbook itself (unreadable file, storage down) surface as errors.
func (s *ImportService) Import(ctx context.Context, tenantID, filename string, r io.Reader) (*ingest.ImportReport, error) {
	wb, err := ingest.OpenExcel(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %q: %w", filename, err)
	}
	defer wb.Close()

	report, err := ingest.NewImporter(s.repos, s.logger).Run(ctx, tenantID, filename, wb)
	if err != nil {
		return nil, err
	}

	if err := s.kv.DeletePrefix(ctx, statsCachePrefix(tenantID)); err != nil {
		s.logger.Warn("Failed to invalidate stats cache",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
	}

	if s.notify != nil {
		if err := s.notify.ImportFinished(tenantID, report); err != nil {
			s.logger.Warn("Import notification failed",
				zap.String("tenant_id", tenantID),
				zap.Error(err))
		}
	}
	return report, nil
}

// History lists the tenant's recorded uploads, newest first.
func (s *ImportService) History(ctx context.Context, tenantID string, limit int) ([]ImportRecord, error) {
	recs, err := s.repos.Imports.List(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ImportRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, ImportRecord{
			ImportID:   r.ImportID,
			Filename:   r.Filename,
			ImportedAt: r.ImportedAt,
		})
	}
	return out, nil
}
