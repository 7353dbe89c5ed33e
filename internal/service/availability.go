package service

import (
	"fmt"
	"sort"
)

// SlotGranularityMinutes is the spacing between candidate start times,
// matching the default appointment duration.
const SlotGranularityMinutes = 30

// TimeSlot is one candidate start time for a requested duration.
type TimeSlot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// Window is an availability window in minutes since midnight, half-open
// [Start, End).
type Window struct {
	Start int
	End   int
}

// Interval is an occupied stretch in minutes since midnight, half-open.
type Interval struct {
	Start int
	End   int
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Postgres time columns scan back with seconds, client input comes without.
func ParseClock(s string) (int, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return h*60 + m, nil
}

// FormatClock formats minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// BuildTimeSlots enumerates candidate start times at the fixed granularity
// across every window, in ascending clock order. A candidate is available
// when the full duration fits inside its window and the interval does not
// intersect any busy interval, regardless of the busy interval's duration.
func BuildTimeSlots(windows []Window, busy []Interval, durationMinutes int) []TimeSlot {
	if durationMinutes <= 0 {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0)
	for _, w := range windows {
		for start := w.Start; start+durationMinutes <= w.End; start += SlotGranularityMinutes {
			end := start + durationMinutes
			available := true
			for _, b := range busy {
				if Overlaps(start, end, b.Start, b.End) {
					available = false
					break
				}
			}
			slots = append(slots, TimeSlot{
				Time:        FormatClock(start),
				IsAvailable: available,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})

	return slots
}

// FitsWindows reports whether [start, start+duration) lies fully inside
// one of the windows.
func FitsWindows(windows []Window, start, durationMinutes int) bool {
	end := start + durationMinutes
	for _, w := range windows {
		if start >= w.Start && end <= w.End {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether [start, start+duration) intersects any
// busy interval.
func ConflictsWith(busy []Interval, start, durationMinutes int) bool {
	end := start + durationMinutes
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
