// Package timetext parses and formats the loose wall-clock and duration
// strings carried by itinerary items ("10:00 AM", "14:00", "2h 30m").
// Malformed input is reported through ok/zero sentinels, never errors.
package timetext

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// Layouts accepted by Clock.Format.
const (
	Layout12 = "12h"
	Layout24 = "24h"
)

const minutesPerDay = 24 * 60

var (
	clockPattern    = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])?\s*$`)
	hoursPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*h`)
	minutesPattern  = regexp.MustCompile(`(\d+)\s*m`)
	unscheduledMark = "TBD"
)

// ParseClock reads "H:MM" or "H:MM AM/PM" (case-insensitive). The second
// return value is false for anything unparseable, including out-of-range
// hours or minutes; callers must check it before using the Clock.
func ParseClock(raw string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return Clock{}, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return Clock{}, false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return Clock{}, false
	}
	if minute < 0 || minute > 59 {
		return Clock{}, false
	}

	meridiem := strings.ToUpper(m[3])
	if meridiem == "" {
		if hour < 0 || hour > 23 {
			return Clock{}, false
		}
		return Clock{Hour: hour, Minute: minute}, true
	}

	if hour < 1 || hour > 12 {
		return Clock{}, false
	}
	if meridiem == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}
	return Clock{Hour: hour, Minute: minute}, true
}

// Scheduled reports whether the raw time string carries a usable time.
// The empty string and the "TBD" placeholder both mean unscheduled.
func Scheduled(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed != "" && !strings.EqualFold(trimmed, unscheduledMark)
}

// Format renders the clock in the requested layout. Layout12 uses
// "h:mm AM/PM" with 12 for both midnight and noon; Layout24 uses
// zero-padded "HH:mm". Unknown layouts fall back to Layout24.
func (c Clock) Format(layout string) string {
	if layout == Layout12 {
		meridiem := "AM"
		hour := c.Hour
		if hour >= 12 {
			meridiem = "PM"
		}
		hour = hour % 12
		if hour == 0 {
			hour = 12
		}
		return fmt.Sprintf("%d:%02d %s", hour, c.Minute, meridiem)
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// ClockFromMinutes builds a Clock from minutes since midnight, wrapping
// across day boundaries in either direction.
func ClockFromMinutes(total int) Clock {
	total %= minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

// AddMinutes performs pure wall-clock addition; results wrap at midnight.
func AddMinutes(c Clock, minutes int) Clock {
	return ClockFromMinutes(c.Minutes() + minutes)
}

// ParseDurationText sums an "<number>h" component and an "<int>m" component
// ("2h", "30m", "1.5h", "2h 30m"). Input with neither component yields 0;
// callers that need a default duration substitute it themselves.
func ParseDurationText(raw string) int {
	total := 0.0
	if m := hoursPattern.FindStringSubmatch(raw); m != nil {
		if hours, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += hours * 60
		}
	}
	if m := minutesPattern.FindStringSubmatch(raw); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil {
			total += float64(mins)
		}
	}
	return int(total)
}

// FormatMinutes renders a minute count in the most compact itinerary form:
// "0m", "2h", "1.5h" or "2h 15m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	rem := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", hours)
	case rem == 30:
		return fmt.Sprintf("%d.5h", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
}

// Overlaps reports half-open interval overlap over minutes since midnight.
// Touching endpoints do not overlap.
func Overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// Span is a scheduled block in minutes since midnight.
type Span struct {
	Start int
	End   int
}

// Gap is an idle stretch between two consecutive spans.
type Gap struct {
	Start   int
	End     int
	Minutes int
}

// FindGaps sorts spans by start time and reports every idle stretch between
// consecutive spans that is at least minGap minutes long.
func FindGaps(spans []Span, minGap int) []Gap {
	if len(spans) < 2 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var gaps []Gap
	for i := 0; i < len(sorted)-1; i++ {
		idle := sorted[i+1].Start - sorted[i].End
		if idle >= minGap {
			gaps = append(gaps, Gap{
				Start:   sorted[i].End,
				End:     sorted[i+1].Start,
				Minutes: idle,
			})
		}
	}
	return gaps
}
