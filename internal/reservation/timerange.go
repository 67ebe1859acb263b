package reservation

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// TimeRange is a half-open [Start,End) interval on a single calendar date,
// expressed in minutes from midnight. A reservation ending at 10:00 never
// conflicts with one starting at 10:00.
type TimeRange struct {
	Start int
	End   int
}

// NewTimeRange parses two HH:MM clock strings into a range with positive
// duration.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := parseClock(start)
	if err != nil {
		return TimeRange{}, err
	}

	e, err := parseClock(end)
	if err != nil {
		return TimeRange{}, err
	}

	if e <= s {
		return TimeRange{}, ErrInvalidTimeRange
	}

	return TimeRange{Start: s, End: e}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, ErrBadTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether two ranges on the same date intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// Minutes is the duration of the range.
func (r TimeRange) Minutes() int {
	return r.End - r.Start
}

// StartClock and EndClock render the bounds back as HH:MM.
func (r TimeRange) StartClock() string {
	return clock(r.Start)
}

func (r TimeRange) EndClock() string {
	return clock(r.End)
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
