package ingest

// RowSkip records one data row the case builder gave up on. Row is the
// 0-based index within the sheet's data rows.
type RowSkip struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// SheetReport is the build outcome of one sheet.
type SheetReport struct {
	Sheet   string    `json:"sheet"`
	Class   string    `json:"class"`
	Created int       `json:"created"`
	Skipped bool      `json:"skipped,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Skips   []RowSkip `json:"skips,omitempty"`
}

// ImportReport sums up one workbook import. A workbook that produced zero
// cases and an empty workbook look the same at the top level; Sheets tells
// them apart.
type ImportReport struct {
	ImportID string        `json:"import_id"`
	Filename string        `json:"filename"`
	Cases    int           `json:"cases"`
	Sheets   []SheetReport `json:"sheets"`
}
