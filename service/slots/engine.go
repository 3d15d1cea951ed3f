package slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat is returned when a time-of-day string is not valid "HH:MM".
var ErrFormat = errors.New("invalid time format")

// TimeOfDay is a wall-clock time of day in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour). A trailing ":SS" component, as
// produced by postgres TIME columns, is accepted and truncated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Format renders the time as zero-padded "HH:MM".
func (t TimeOfDay) Format() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time shifted forward by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Interval is a half-open time-of-day interval [Start, End).
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals share any point.
// Touching endpoints do not overlap. This is the single overlap predicate
// used for both availability filtering and booking conflict detection.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Slot is one candidate bookable interval, rendered with "HH:MM" endpoints.
// The minute span is carried alongside the rendered strings: a final slot
// overrunning midnight renders as "24:MM", which is not a parseable time of
// day, so consumers compare spans instead of re-parsing the strings.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	span Interval
}

// Interval returns the slot's endpoints as a comparable interval.
func (s Slot) Interval() Interval {
	return s.span
}

// Generate walks a cursor from start to end in steps of duration minutes
// and emits one slot per step. A slot is suppressed only when it lies
// entirely within the break window; a slot straddling a break boundary is
// still emitted. The final slot may extend past end when duration does not
// evenly divide the working window.
func Generate(start, end TimeOfDay, duration int, brk *Interval) []Slot {
	generated := []Slot{}
	if duration <= 0 {
		return generated
	}
	for cursor := start; cursor < end; cursor = cursor.Add(duration) {
		slotEnd := cursor.Add(duration)
		if brk != nil && cursor >= brk.Start && slotEnd <= brk.End {
			continue
		}
		generated = append(generated, Slot{
			StartTime: cursor.Format(),
			EndTime:   slotEnd.Format(),
			span:      Interval{Start: cursor, End: slotEnd},
		})
	}
	return generated
}
