package stats

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darman-data/internal/domain"
)

func wardCase(admission, discharge, delivery string, defects domain.DefectList) *domain.WardCase {
	return &domain.WardCase{
		AdmissionDate: admission,
		DischargeDate: discharge,
		DeliveryDate:  delivery,
		Defects:       defects,
	}
}

func TestWindowSwapsReversedBounds(t *testing.T) {
	w, err := NewWindow("1402/06/01", "1402/01/01")
	require.NoError(t, err)
	assert.True(t, w.Start.Before(w.End))
	assert.True(t, w.Contains("1402/03/15"))
}

func TestWindowInclusiveBounds(t *testing.T) {
	w, err := NewWindow("1402/01/01", "1402/06/01")
	require.NoError(t, err)

	assert.True(t, w.Contains("1402/01/01"))
	assert.True(t, w.Contains("1402/06/01"))
	assert.False(t, w.Contains("1401/12/29"))
	assert.False(t, w.Contains("1402/06/02"))
	// unparseable dates are never inside a window
	assert.False(t, w.Contains("nope"))
	assert.False(t, w.Contains(""))
}

func TestWindowRejectsMalformedBounds(t *testing.T) {
	_, err := NewWindow("1402/01/01", "not-a-date")
	assert.Error(t, err)
}

func TestNilWindowContainsEverything(t *testing.T) {
	var w *Window
	assert.True(t, w.Contains("1402/01/01"))
	assert.True(t, w.Contains("garbage"))
}

func TestFilterWardCases(t *testing.T) {
	cases := []*domain.WardCase{
		wardCase("1402/02/01", "", "", nil),
		wardCase("1402/07/01", "", "", nil),
		wardCase("bad-date", "", "", nil),
	}
	w, err := NewWindow("1402/01/01", "1402/06/01")
	require.NoError(t, err)

	assert.Len(t, FilterWardCases(cases, w), 1)
	// no window keeps everything, bad dates included
	assert.Len(t, FilterWardCases(cases, nil), 3)
}

func TestDefectSheetDistributionCountsCasesNotSlots(t *testing.T) {
	cases := []*domain.WardCase{
		// code 2 in two slots of the same case counts once
		wardCase("", "", "", domain.DefectList{
			{SheetCode: "2"}, {SheetCode: "2"},
		}),
		wardCase("", "", "", domain.DefectList{{SheetCode: "2"}, {SheetCode: "7"}}),
		wardCase("", "", "", nil),
		wardCase("", "", "", domain.DefectList{{TypeCodes: []string{"4"}}}),
	}

	dist := DefectSheetDistribution(cases)
	require.Len(t, dist, len(domain.DefectSheetCodes))

	byCode := map[string]CodeCount{}
	for _, cc := range dist {
		byCode[cc.Code] = cc
	}
	assert.Equal(t, 2, byCode["2"].Count)
	assert.Equal(t, 1, byCode["7"].Count)
	assert.Zero(t, byCode["1"].Count)

	// two defective cases: only sheet slots count toward the denominator
	assert.Equal(t, 100, byCode["2"].Percent)
	assert.Equal(t, 50, byCode["7"].Percent)
}

func TestDefectTypeDistributionMultiValued(t *testing.T) {
	cases := []*domain.WardCase{
		wardCase("", "", "", domain.DefectList{
			{SheetCode: "1", TypeCodes: []string{"4", "6"}},
		}),
		wardCase("", "", "", domain.DefectList{
			{SheetCode: "3", TypeCodes: []string{"6"}},
		}),
	}

	dist := DefectTypeDistribution(cases)
	byCode := map[string]CodeCount{}
	for _, cc := range dist {
		byCode[cc.Code] = cc
	}
	assert.Equal(t, 2, byCode["6"].Count)
	assert.Equal(t, 1, byCode["4"].Count)
	assert.Equal(t, 100, byCode["6"].Percent)
}

func TestDistributionEmptyDenominator(t *testing.T) {
	dist := DefectSheetDistribution([]*domain.WardCase{wardCase("", "", "", nil)})
	for _, cc := range dist {
		assert.Zero(t, cc.Percent)
	}
}

func TestStayAndArriveDays(t *testing.T) {
	cases := []*domain.WardCase{
		wardCase("1402/01/01", "1402/01/05", "1402/01/07", nil), // stay 4, arrive 2
		wardCase("1402/02/01", "1402/02/07", "1402/02/11", nil), // stay 6, arrive 4
		wardCase("1402/03/01", "", "", nil),                     // no pair, skipped
	}

	stay := StayDays(cases)
	require.True(t, stay.Valid)
	assert.Equal(t, 5, stay.Days)

	arrive := ArriveDays(cases)
	require.True(t, arrive.Valid)
	assert.Equal(t, 3, arrive.Days)
}

func TestAverageDaysSentinel(t *testing.T) {
	avg := StayDays([]*domain.WardCase{wardCase("1402/01/01", "", "", nil)})
	assert.False(t, avg.Valid)
	assert.Zero(t, avg.Days)

	// a true zero average stays distinguishable
	zero := StayDays([]*domain.WardCase{wardCase("1402/01/01", "1402/01/01", "", nil)})
	assert.True(t, zero.Valid)
	assert.Zero(t, zero.Days)
}

func TestMostFrequent(t *testing.T) {
	assert.Nil(t, MostFrequent(nil))

	top := MostFrequent([]string{"الف", "ب", "ب", "الف", "ج"})
	require.NotNil(t, top)
	// tie between الف and ب breaks toward first seen
	assert.Equal(t, "الف", top.Name)
	assert.Equal(t, 2, top.Count)
}

func TestSocialSecurityCases(t *testing.T) {
	cases := []*domain.WardCase{
		{Insurance: "تامین اجتماعی"},
		{Insurance: "بیمه تامین اجتماعی ویژه"},
		{Insurance: "آزاد"},
		{Insurance: ""},
	}
	assert.Len(t, SocialSecurityCases(cases), 2)
}

func TestNotArrivedCases(t *testing.T) {
	cases := []*domain.WardCase{
		{DeliveryDate: "1402/01/07"},
		{DeliveryDate: ""},
	}
	assert.Len(t, NotArrivedCases(cases), 1)
}

func TestOperationsBySize(t *testing.T) {
	cases := []*domain.OperationCase{
		{OperationSize: domain.OperationLarge},
		{OperationSize: domain.OperationLarge},
		{OperationSize: domain.OperationSmall},
		{OperationSize: ""}, // unclassified, in no bucket
	}
	large, medium, small := OperationsBySize(cases)
	assert.Len(t, large, 2)
	assert.Empty(t, medium)
	assert.Len(t, small, 1)
}

func TestAgeFromText(t *testing.T) {
	assert.Equal(t, 75, AgeFromText("۷۵ سال"))
	assert.Equal(t, 75, AgeFromText("75"))
	assert.Equal(t, 0, AgeFromText("N/A"))
	assert.Equal(t, 0, AgeFromText(""))
	assert.Equal(t, 12, AgeFromText("1 ماه و 2 روز")) // digits concatenate
}

func TestDeathDemographics(t *testing.T) {
	cases := []*domain.DeathCase{
		{Age: "۷۵ سال", GenderCode: domain.GenderMale},
		{Age: "N/A", GenderCode: domain.GenderFemale},
		{Age: "42", GenderCode: domain.GenderMale},
		{Age: "81", GenderCode: ""},
		{Age: "19", GenderCode: domain.GenderFemale},
		{Age: "20", GenderCode: domain.GenderMale},
	}

	d := DeathDemographics(cases)
	assert.Equal(t, 6, d.Cases)
	assert.Equal(t, 2, d.Ages.Under20) // "N/A" parses as 0
	assert.Equal(t, 1, d.Ages.Age20to39)
	assert.Equal(t, 1, d.Ages.Age40to59)
	assert.Equal(t, 1, d.Ages.Age60to79)
	assert.Equal(t, 1, d.Ages.Over80)
	assert.Equal(t, 3, d.Gender.Male)
	assert.Equal(t, 2, d.Gender.Female)
}

func TestDefectCasesHelpers(t *testing.T) {
	withDefect := &domain.WardCase{
		PatientID: sql.NullString{String: "p", Valid: true},
		Defects:   domain.DefectList{{SheetCode: "5"}},
	}
	without := &domain.WardCase{Defects: domain.DefectList{{TypeCodes: []string{"2"}}}}

	out := DefectCases([]*domain.WardCase{withDefect, without})
	require.Len(t, out, 1)
	assert.Same(t, withDefect, out[0])
}
