package domain

import (
	"fmt"
	"strings"
	"time"
)

// EndOfDayLabel is the textual form of a deadline with no special time.
const EndOfDayLabel = "EOD"

// Deadline is either a concrete time of day or the end-of-day sentinel.
// The zero value is end of day.
type Deadline struct {
	offset   time.Duration
	concrete bool
}

// EndOfDay returns the sentinel deadline meaning "no special deadline".
func EndOfDay() Deadline { return Deadline{} }

// At returns a concrete deadline at hour:minute.
func At(hour, minute int) (Deadline, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Deadline{}, invalid("deadline", "time of day %02d:%02d out of range", hour, minute)
	}
	return Deadline{
		offset:   time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute,
		concrete: true,
	}, nil
}

var deadlineLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseDeadline accepts "10:30 AM", "10:30AM", "10:30", and "EOD" (or empty).
func ParseDeadline(s string) (Deadline, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, EndOfDayLabel) {
		return EndOfDay(), nil
	}

	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err == nil {
			return At(t.Hour(), t.Minute())
		}
	}

	return Deadline{}, invalid("deadline", "unrecognized time of day %q", s)
}

// IsConcrete reports whether the deadline is an actual time rather than end of day.
func (d Deadline) IsConcrete() bool { return d.concrete }

// Offset is the time since midnight. It is zero for end of day.
func (d Deadline) Offset() time.Duration { return d.offset }

// On returns the deadline as an instant on the given day.
// End of day resolves to the last minute of that day.
func (d Deadline) On(day time.Time) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	if !d.concrete {
		return midnight.Add(24*time.Hour - time.Minute)
	}
	return midnight.Add(d.offset)
}

func (d Deadline) String() string {
	if !d.concrete {
		return EndOfDayLabel
	}
	h := int(d.offset / time.Hour)
	m := int((d.offset % time.Hour) / time.Minute)
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format("3:04 PM")
}

func (d Deadline) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Deadline) UnmarshalText(b []byte) error {
	parsed, err := ParseDeadline(string(b))
	if err != nil {
		return fmt.Errorf("unmarshal deadline: %w", err)
	}
	*d = parsed
	return nil
}
