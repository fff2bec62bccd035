package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		classes []SheetClass
	}{
		{"section1", []SheetClass{ClassWard}},
		{"Section-ICU", []SheetClass{ClassWard}},
		{"SECTION", []SheetClass{ClassWard}},
		{"room2", []SheetClass{ClassRoom}},
		{"OperatingRoom", []SheetClass{ClassRoom}},
		{"dc", []SheetClass{ClassDeath}},
		{"DC-1404", []SheetClass{ClassDeath}},
		{"Sheet1", nil},
		{"", nil},
		// a name carrying several markers feeds every matching pipeline
		{"section-room", []SheetClass{ClassWard, ClassRoom}},
		{"room-dc", []SheetClass{ClassRoom, ClassDeath}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.classes, Classify(tt.name), "sheet %q", tt.name)
	}
}

func TestRecordRowsMarker(t *testing.T) {
	s := &Sheet{
		Name:   "section1",
		Header: make([]string, 14),
		Rows: [][]string{
			{"بیمه", "1402/01/05", "داخلی", "دکتر الف", "1402/01/01", "", "100", "دکتر ب", "P-123 علی رضایی", "1402/01/07"},
			{"جمع کل", "", "", "", "", "", "", "", "", ""},
			{"بیمه", "1402/02/05", "داخلی", "دکتر الف", "1402/02/01", "", "101", "دکتر ب", "P-124 رضا کریمی", "1402/02/07"},
		},
	}
	rows := RecordRows(s, &WardSchema)
	assert.Len(t, rows, 2)
	assert.Equal(t, "100", Cell(rows[0], 6))
	assert.Equal(t, "101", Cell(rows[1], 6))
}

func TestRecordRowsNarrowSheetUnfiltered(t *testing.T) {
	s := &Sheet{
		Name:   "section1",
		Header: make([]string, 5),
		Rows: [][]string{
			{"a", "b", "c"},
			{"d", "e", "f"},
		},
	}
	// marker column is out of range, every row passes
	assert.Len(t, RecordRows(s, &WardSchema), 2)
}

func TestRecordRowsNoMarker(t *testing.T) {
	s := &Sheet{
		Name:   "room1",
		Header: make([]string, 11),
		Rows:   [][]string{{"x"}, {"y"}, {"z"}},
	}
	assert.Len(t, RecordRows(s, &RoomSchema), 3)
}
