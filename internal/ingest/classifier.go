package ingest

import "strings"

// SheetClass is the recognized kind of a workbook sheet.
type SheetClass int

const (
	ClassUnknown SheetClass = iota
	ClassWard
	ClassRoom
	ClassDeath
)

func (c SheetClass) String() string {
	switch c {
	case ClassWard:
		return "ward"
	case ClassRoom:
		return "room"
	case ClassDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Classify returns every class whose marker the sheet name carries, in
// ward, room, death order; matching is case-insensitive. A name with
// several markers feeds each matching pipeline independently. Anything
// unmarked yields nil and is ignored by the pipeline.
func Classify(sheetName string) []SheetClass {
	name := strings.ToLower(sheetName)
	var classes []SheetClass
	if strings.Contains(name, "section") {
		classes = append(classes, ClassWard)
	}
	if strings.Contains(name, "room") {
		classes = append(classes, ClassRoom)
	}
	if strings.Contains(name, "dc") {
		classes = append(classes, ClassDeath)
	}
	return classes
}
