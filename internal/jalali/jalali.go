// Package jalali converts Jalali (Persian calendar) date strings, as they
// appear in workbook cells, to absolute instants. Callers must treat a
// conversion error as "exclude this date and continue", never as a failure
// of the surrounding batch.
package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// ToTime converts a "yyyy/mm/dd" Jalali date string (separator "/" or "-",
// Persian or Arabic-Indic digits accepted) to the Gregorian instant at
// midnight local (Iran) time. Any string that is not a well-formed Jalali
// date yields an error.
func ToTime(s string) (time.Time, error) {
	s = NormalizeDigits(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	sep := "/"
	if !strings.Contains(s, sep) {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed jalali date %q", s)
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed jalali year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed jalali month in %q: %w", s, err)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed jalali day in %q: %w", s, err)
	}

	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("jalali date %q out of range", s)
	}

	pt := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, ptime.Iran())
	// ptime normalizes overflow (e.g. 1402/12/31 in a common year rolls
	// over); a round-trip mismatch means the day did not exist.
	if pt.Year() != year || int(pt.Month()) != month || pt.Day() != day {
		return time.Time{}, fmt.Errorf("jalali date %q does not exist", s)
	}

	return pt.Time(), nil
}

// DaysBetween returns the signed day count from to, minus from, for two
// Jalali date strings. An error from either conversion is returned as-is.
func DaysBetween(from, to string) (int, error) {
	f, err := ToTime(from)
	if err != nil {
		return 0, err
	}
	t, err := ToTime(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// NormalizeDigits maps Persian (۰-۹) and Arabic-Indic (٠-٩) digits to ASCII.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
