package domain

import (
	"time"
)

// ImportFile records one uploaded workbook. Losing the top-level import
// record is the only hard failure of an import; everything below it degrades
// to partial results.
type ImportFile struct {
	ImportID   string    `db:"import_id"`
	TenantID   string    `db:"tenant_id"`
	Filename   string    `db:"filename"`
	ImportedAt time.Time `db:"imported_at"`
}
