package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar dates. Only the year, month
// and day of Start and End are significant.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParseDateRange builds a range from two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return DateRange{Start: s, End: e}, nil
}

// CalendarDate drops the clock and location from t, keeping the date as
// seen in t's own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Valid() bool {
	return !CalendarDate(r.Start).After(CalendarDate(r.End))
}

// Overlaps reports whether two inclusive ranges share at least one day.
// Ranges that only touch at a boundary day overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	a0, a1 := CalendarDate(r.Start), CalendarDate(r.End)
	b0, b1 := CalendarDate(other.Start), CalendarDate(other.End)
	return !a0.After(b1) && !b0.After(a1)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}
