package ingest

import "strings"

// RecordRows returns the data rows of a sheet that hold actual records.
// When the schema has a marker rule and the sheet is wide enough to carry
// the marker column, only rows whose marker cell contains the marker token
// survive; a sheet too narrow for its marker column passes through
// unfiltered, matching how too-short layouts are tolerated everywhere else
// in the pipeline.
func RecordRows(s *Sheet, schema *ClassSchema) [][]string {
	if schema.Marker == nil || s.Width() <= schema.Marker.Col {
		return s.Rows
	}
	var out [][]string
	for _, row := range s.Rows {
		if strings.Contains(Cell(row, schema.Marker.Col), schema.Marker.Substr) {
			out = append(out, row)
		}
	}
	return out
}
