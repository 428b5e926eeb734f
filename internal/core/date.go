package core

import (
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date (no time-of-day component). The zero value marks
// an unparseable or absent date.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the date as "YYYY-MM-DD", or "" for the zero value.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d Date) String() string { return d.ISO() }

// MarshalJSON encodes the date as its ISO string ("" when zero).
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON accepts an ISO date string; anything unparseable yields the
// zero value rather than an error.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*d = ParseDate(s)
	return nil
}

// fallbackLayouts are tried in order when the input is not D/M/Y. The set is
// fixed so parsing never depends on the runtime locale.
var fallbackLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate normalizes a raw sale date into a calendar Date. The primary
// format is day/month/year with "/" separators, components zero-padded or
// not. Inputs that cannot be understood yield the zero Date; ParseDate never
// panics.
func ParseDate(raw string) Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD == nil && errM == nil && errY == nil {
			return calendarDate(year, month, day)
		}
		return Date{}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day())
		}
	}
	return Date{}
}

// calendarDate validates components by round-tripping through time.Date,
// which normalizes overflow (month 13 becomes January). A mismatch after
// construction means the input was not a real calendar date.
func calendarDate(year, month, day int) Date {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}
	}
	return Date{Time: t}
}
