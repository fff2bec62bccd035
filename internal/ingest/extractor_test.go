package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wardSheet() *Sheet {
	return &Sheet{
		Name: "section1",
		Header: []string{
			"بیمه", "تاریخ ترخیص", "بخش", "پزشک معالج", "تاریخ پذیرش", "x",
			"شماره پرونده", "پزشک معرف", "بیمار", "تاریخ تحویل",
			"برگ نقص", "نوع نقص", "برگ نقص", "نوع نقص",
		},
		Rows: [][]string{
			{"تامین اجتماعی", "1402/01/05", "داخلی", "دکتر احمدی", "1402/01/01", "", "100", "دکتر رضوی", "P-123 علی رضایی", "1402/01/07", "2", "4", "", ""},
			{"آزاد", "1402/01/09", "جراحی", "دکتر احمدی", "1402/01/02", "", "101", "", "P-124 رضا کریمی", "", "", "", "", ""},
			{"جمع", "", "", "", "", "", "", "", "", "", "", "", "", ""},
		},
	}
}

func roomSheet() *Sheet {
	return &Sheet{
		Name: "room1",
		Header: []string{
			"تاریخ بستری", "تاریخ ترخیص", "تاریخ عمل", "نام بیمار", "شناسه بیمار",
			"شماره پرونده", "اتاق", "نوع عمل", "کا", "جراح", "بیهوشی",
		},
		Rows: [][]string{
			{"1402/01/01", "1402/01/03", "1402/01/02", "علی رضایی", "P-123", "200", "اتاق عمل یک", "3", "25", "دکتر موسوی", "1"},
		},
	}
}

func deathSheet() *Sheet {
	return &Sheet{
		Name: "dc1",
		Header: []string{
			"شماره", "پزشک", "علت فوت", "محل فوت", "بخش بستری", "تاریخ فوت", "تاریخ پذیرش",
			"x", "y", "سن", "جنسیت", "بیمار", "z", "تاریخ تحویل",
		},
		Rows: [][]string{
			{"U-300", "دکتر احمدی", "ایست قلبی", "ICU", "داخلی", "1402/03/01", "1402/02/20", "", "", "۷۵ سال", "1", "حسن محمدی", "", "1402/03/05"},
			{"300", "دکتر غایب", "", "", "", "", "", "", "", "", "", "", "", ""},
		},
	}
}

func TestExtractWardSheet(t *testing.T) {
	e := ExtractSheet(wardSheet(), ClassWard)

	require.Contains(t, e.Wards, "داخلی")
	require.Contains(t, e.Wards, "جراحی")
	assert.True(t, e.Wards["داخلی"].Has("section1"))

	// both doctor columns contribute, associated with the row's ward
	require.Contains(t, e.Doctors, "دکتر احمدی")
	require.Contains(t, e.Doctors, "دکتر رضوی")
	assert.True(t, e.Doctors["دکتر احمدی"].Has("داخلی"))
	assert.True(t, e.Doctors["دکتر احمدی"].Has("جراحی"))
	assert.True(t, e.Doctors["دکتر رضوی"].Has("داخلی"))

	require.Contains(t, e.Patients, "P-123 علی رضایی")
	assert.True(t, e.Patients["P-123 علی رضایی"].Has("داخلی"))

	// the summary row has no P marker and contributes nothing
	assert.NotContains(t, e.Wards, "جمع")
	assert.Empty(t, e.Rooms)
}

func TestExtractRoomSheet(t *testing.T) {
	e := ExtractSheet(roomSheet(), ClassRoom)

	require.Contains(t, e.Rooms, "اتاق عمل یک")
	assert.Empty(t, e.Wards)

	require.Contains(t, e.Doctors, "دکتر موسوی")
	assert.True(t, e.Doctors["دکتر موسوی"].Has("اتاق عمل یک"))

	// patient identity is "<id> <name>" built from the two header columns
	require.Contains(t, e.Patients, "P-123 علی رضایی")
	assert.True(t, e.Patients["P-123 علی رضایی"].Has("اتاق عمل یک"))
}

func TestExtractRoomSheetWithoutPatientHeaders(t *testing.T) {
	s := roomSheet()
	s.Header[3] = "bimar"
	s.Header[4] = "id"
	e := ExtractSheet(s, ClassRoom)
	assert.Empty(t, e.Patients)
	assert.Contains(t, e.Rooms, "اتاق عمل یک")
}

func TestExtractDeathSheet(t *testing.T) {
	e := ExtractSheet(deathSheet(), ClassDeath)

	// the second row has no U marker and is dropped entirely
	require.Contains(t, e.Wards, "داخلی")
	require.Contains(t, e.Doctors, "دکتر احمدی")
	assert.NotContains(t, e.Doctors, "دکتر غایب")
	require.Contains(t, e.Patients, "حسن محمدی")
	assert.True(t, e.Patients["حسن محمدی"].Has("داخلی"))
}

func TestExtractionMerge(t *testing.T) {
	merged := NewExtraction()
	merged.Merge(ExtractSheet(wardSheet(), ClassWard))
	merged.Merge(ExtractSheet(roomSheet(), ClassRoom))
	merged.Merge(ExtractSheet(deathSheet(), ClassDeath))

	// the same doctor seen on ward and death sheets keeps one entry with
	// the union of associations
	require.Contains(t, merged.Doctors, "دکتر احمدی")
	assert.True(t, merged.Doctors["دکتر احمدی"].Has("داخلی"))
	assert.True(t, merged.Doctors["دکتر احمدی"].Has("جراحی"))

	// same identity from ward and room sheets collapses to one patient
	require.Contains(t, merged.Patients, "P-123 علی رضایی")
	assert.True(t, merged.Patients["P-123 علی رضایی"].Has("داخلی"))
	assert.True(t, merged.Patients["P-123 علی رضایی"].Has("اتاق عمل یک"))
}
