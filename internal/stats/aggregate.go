package stats

import (
	"math"
	"strconv"
	"strings"

	"darman-data/internal/domain"
	"darman-data/internal/jalali"
)

// FilterWardCases keeps the cases whose admission date falls in the window.
func FilterWardCases(cases []*domain.WardCase, w *Window) []*domain.WardCase {
	if w == nil {
		return cases
	}
	var out []*domain.WardCase
	for _, c := range cases {
		if w.Contains(c.AdmissionDate) {
			out = append(out, c)
		}
	}
	return out
}

// FilterOperationCases keys on the operation date.
func FilterOperationCases(cases []*domain.OperationCase, w *Window) []*domain.OperationCase {
	if w == nil {
		return cases
	}
	var out []*domain.OperationCase
	for _, c := range cases {
		if w.Contains(c.OperationDate) {
			out = append(out, c)
		}
	}
	return out
}

// FilterDeathCases keys on the admission date, same as ward cases.
func FilterDeathCases(cases []*domain.DeathCase, w *Window) []*domain.DeathCase {
	if w == nil {
		return cases
	}
	var out []*domain.DeathCase
	for _, c := range cases {
		if w.Contains(c.AdmissionDate) {
			out = append(out, c)
		}
	}
	return out
}

// DefectCases keeps the cases recording at least one defect sheet.
func DefectCases(cases []*domain.WardCase) []*domain.WardCase {
	var out []*domain.WardCase
	for _, c := range cases {
		if c.HasDefect() {
			out = append(out, c)
		}
	}
	return out
}

// DefectSheetDistribution counts, per defect-sheet code, the cases carrying
// that code in any slot. A case with the same code in two slots still counts
// once. Percentages are over the defective-case population.
func DefectSheetDistribution(cases []*domain.WardCase) []CodeCount {
	denom := len(DefectCases(cases))
	out := make([]CodeCount, 0, len(domain.DefectSheetCodes))
	for _, cl := range domain.DefectSheetCodes {
		count := 0
		for _, c := range cases {
			for _, p := range c.Defects {
				if p.SheetCode == cl.Code {
					count++
					break
				}
			}
		}
		out = append(out, CodeCount{
			Code:    cl.Code,
			Label:   cl.Label,
			Count:   count,
			Percent: percent(count, denom),
		})
	}
	return out
}

// DefectTypeDistribution is the same shape over the defect-type slots, whose
// cells may carry several codes each.
func DefectTypeDistribution(cases []*domain.WardCase) []CodeCount {
	denom := len(DefectCases(cases))
	out := make([]CodeCount, 0, len(domain.DefectTypeCodes))
	for _, cl := range domain.DefectTypeCodes {
		count := 0
		for _, c := range cases {
			for _, p := range c.Defects {
				if p.HasType(cl.Code) {
					count++
					break
				}
			}
		}
		out = append(out, CodeCount{
			Code:    cl.Code,
			Label:   cl.Label,
			Count:   count,
			Percent: percent(count, denom),
		})
	}
	return out
}

func percent(count, denom int) int {
	if denom == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(denom)))
}

// AverageDays is the mean signed day count between two date fields over the
// cases where both convert. from and to pick the fields off each case.
func AverageDays(cases []*domain.WardCase, from, to func(*domain.WardCase) string) DayAverage {
	var days []int
	for _, c := range cases {
		d, err := jalali.DaysBetween(from(c), to(c))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return DayAverage{}
	}
	sum := 0
	for _, d := range days {
		sum += d
	}
	return DayAverage{
		Days:  int(math.Round(float64(sum) / float64(len(days)))),
		Valid: true,
	}
}

// ArriveDays measures discharge to archive delivery.
func ArriveDays(cases []*domain.WardCase) DayAverage {
	return AverageDays(cases,
		func(c *domain.WardCase) string { return c.DischargeDate },
		func(c *domain.WardCase) string { return c.DeliveryDate })
}

// StayDays measures admission to discharge.
func StayDays(cases []*domain.WardCase) DayAverage {
	return AverageDays(cases,
		func(c *domain.WardCase) string { return c.AdmissionDate },
		func(c *domain.WardCase) string { return c.DischargeDate })
}

// MostFrequent picks the most common name, ties broken by first appearance.
// Nil when the list is empty.
func MostFrequent(names []string) *NameCount {
	counts := map[string]int{}
	var order []string
	for _, n := range names {
		if _, seen := counts[n]; !seen {
			order = append(order, n)
		}
		counts[n]++
	}
	var best *NameCount
	for _, n := range order {
		if best == nil || counts[n] > best.Count {
			best = &NameCount{Name: n, Count: counts[n]}
		}
	}
	return best
}

// NotArrivedCases keeps the cases whose record never reached the archive.
func NotArrivedCases(cases []*domain.WardCase) []*domain.WardCase {
	var out []*domain.WardCase
	for _, c := range cases {
		if c.NotArrived() {
			out = append(out, c)
		}
	}
	return out
}

// socialSecurityMarker flags the state insurer in free-text insurance labels.
const socialSecurityMarker = "تامین اجتماعی"

// SocialSecurityCases keeps the cases insured by the state insurer,
// substring match over the free-text label.
func SocialSecurityCases(cases []*domain.WardCase) []*domain.WardCase {
	var out []*domain.WardCase
	for _, c := range cases {
		if strings.Contains(c.Insurance, socialSecurityMarker) {
			out = append(out, c)
		}
	}
	return out
}

// OperationsBySize splits operation cases into the three size classes.
// Unclassified cases appear in none of them.
func OperationsBySize(cases []*domain.OperationCase) (large, medium, small []*domain.OperationCase) {
	for _, c := range cases {
		switch c.OperationSize {
		case domain.OperationLarge:
			large = append(large, c)
		case domain.OperationMedium:
			medium = append(medium, c)
		case domain.OperationSmall:
			small = append(small, c)
		}
	}
	return large, medium, small
}

// AgeFromText pulls every digit character out of a free-text age and parses
// the concatenation. No digits parses as 0.
func AgeFromText(age string) int {
	var digits strings.Builder
	for _, r := range jalali.NormalizeDigits(age) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// DeathDemographics buckets death cases by extracted age and gender code.
func DeathDemographics(cases []*domain.DeathCase) Demographics {
	d := Demographics{Cases: len(cases)}
	for _, c := range cases {
		switch age := AgeFromText(c.Age); {
		case age < 20:
			d.Ages.Under20++
		case age < 40:
			d.Ages.Age20to39++
		case age < 60:
			d.Ages.Age40to59++
		case age < 80:
			d.Ages.Age60to79++
		default:
			d.Ages.Over80++
		}
		switch c.GenderCode {
		case domain.GenderMale:
			d.Gender.Male++
		case domain.GenderFemale:
			d.Gender.Female++
		}
	}
	return d
}
