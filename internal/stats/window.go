package stats

import (
	"time"

	"darman-data/internal/jalali"
)

// Window is an inclusive [Start, End] span in Gregorian time, built from
// local-calendar bounds. The nil window means "no filtering": every case is
// in scope regardless of its date.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow converts both bounds and swaps them when given in reverse. Both
// bounds must be present and well-formed; callers treat an error as "serve
// the unwindowed view" or reject the request, their choice.
func NewWindow(start, end string) (*Window, error) {
	s, err := jalali.ToTime(start)
	if err != nil {
		return nil, err
	}
	e, err := jalali.ToTime(end)
	if err != nil {
		return nil, err
	}
	if s.After(e) {
		s, e = e, s
	}
	return &Window{Start: s, End: e}, nil
}

// Contains reports whether a local-calendar date string falls inside the
// window. An unparseable date is never inside. The nil window contains
// everything, unparseable dates included.
func (w *Window) Contains(dateString string) bool {
	if w == nil {
		return true
	}
	t, err := jalali.ToTime(dateString)
	if err != nil {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}
