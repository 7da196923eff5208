package model

import (
	"fmt"
	"time"
)

// Datetime represents a calendar moment with minute precision.
// Values are immutable; arithmetic returns new values.
type Datetime struct {
	Year   uint16 `json:"year"`
	Month  uint8  `json:"month"`
	Day    uint8  `json:"day"`
	Hour   uint8  `json:"hour"`
	Minute uint8  `json:"minute"`
}

// NewDatetime creates a Datetime from its components.
func NewDatetime(year uint16, month, day, hour, minute uint8) Datetime {
	return Datetime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}
}

// Now returns the current local datetime.
func Now() Datetime {
	now := time.Now()
	return Datetime{
		Year:   uint16(now.Year()),
		Month:  uint8(now.Month()),
		Day:    uint8(now.Day()),
		Hour:   uint8(now.Hour()),
		Minute: uint8(now.Minute()),
	}
}

// FromTime converts a time.Time to a Datetime, discarding seconds.
func FromTime(t time.Time) Datetime {
	return Datetime{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
	}
}

// String formats the datetime as "YYYY-MM-DD HH:MM". This is the canonical
// due-text form stored by every backend.
func (d Datetime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

// ParseDatetime parses the canonical "YYYY-MM-DD HH:MM" form. The format is
// strict: four-digit year, zero-padded fields, single space separator.
func ParseDatetime(s string) (Datetime, error) {
	var year, month, day, hour, minute int
	n, err := fmt.Sscanf(s, "%4d-%2d-%2d %2d:%2d", &year, &month, &day, &hour, &minute)
	if err != nil || n != 5 || len(s) != 16 {
		return Datetime{}, fmt.Errorf("invalid due text %q: want YYYY-MM-DD HH:MM", s)
	}
	// Sscanf's %d accepts a leading sign, so every field needs a lower bound
	// too or a negative value would wrap through the unsigned fields below.
	if year < 0 {
		return Datetime{}, fmt.Errorf("invalid due text %q: year out of range", s)
	}
	if month < 1 || month > 12 {
		return Datetime{}, fmt.Errorf("invalid due text %q: month out of range", s)
	}
	if day < 1 || day > 31 {
		return Datetime{}, fmt.Errorf("invalid due text %q: day out of range", s)
	}
	if hour < 0 || hour > 23 {
		return Datetime{}, fmt.Errorf("invalid due text %q: hour out of range", s)
	}
	if minute < 0 || minute > 59 {
		return Datetime{}, fmt.Errorf("invalid due text %q: minute out of range", s)
	}
	return Datetime{
		Year:   uint16(year),
		Month:  uint8(month),
		Day:    uint8(day),
		Hour:   uint8(hour),
		Minute: uint8(minute),
	}, nil
}

// TotalMinutes projects the datetime onto a scalar minute count using a
// simplified calendar: every month is 30 days and every year is 365 days.
// The projection preserves ordering for scheduling purposes but drifts from
// true calendar arithmetic across month boundaries.
func (d Datetime) TotalMinutes() int64 {
	const daysInMonth = 30
	totalDays := int64(d.Year)*365 + (int64(d.Month)-1)*daysInMonth + int64(d.Day)
	return totalDays*24*60 + int64(d.Hour)*60 + int64(d.Minute)
}

// Compare returns -1, 0, or 1 ordering d against other by TotalMinutes.
func (d Datetime) Compare(other Datetime) int {
	a, b := d.TotalMinutes(), other.TotalMinutes()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is earlier than other.
func (d Datetime) Before(other Datetime) bool {
	return d.Compare(other) < 0
}

// Diff computes the signed difference d - other, decomposed into whole days,
// hours, and minutes. The magnitude fields are always non-negative; the sign
// is carried separately on the result.
func (d Datetime) Diff(other Datetime) TimeDiff {
	diff := d.TotalMinutes() - other.TotalMinutes()
	negative := diff < 0
	if negative {
		diff = -diff
	}
	return TimeDiff{
		Days:     int(diff / (24 * 60)),
		Hours:    int((diff % (24 * 60)) / 60),
		Minutes:  int(diff % 60),
		Negative: negative,
	}
}

// TimeDiff is a signed duration between two Datetimes. Hours and Minutes are
// normalized into [0,24) and [0,60); Negative carries the sign.
type TimeDiff struct {
	Days     int  `json:"days"`
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	Negative bool `json:"negative"`
}

// ToHours returns the signed duration in fractional hours.
func (td TimeDiff) ToHours() float64 {
	total := float64(td.Days)*24 + float64(td.Hours) + float64(td.Minutes)/60
	if td.Negative {
		return -total
	}
	return total
}

// ToMinutes returns the signed duration in whole minutes.
func (td TimeDiff) ToMinutes() int64 {
	total := int64(td.Days)*24*60 + int64(td.Hours)*60 + int64(td.Minutes)
	if td.Negative {
		return -total
	}
	return total
}

// ToDays returns the signed duration in fractional days.
func (td TimeDiff) ToDays() float64 {
	total := float64(td.Days) + float64(td.Hours)/24 + float64(td.Minutes)/1440
	if td.Negative {
		return -total
	}
	return total
}

// String formats the duration as "3d 4h 5m", prefixed with "-" when negative.
func (td TimeDiff) String() string {
	sign := ""
	if td.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%dd %dh %dm", sign, td.Days, td.Hours, td.Minutes)
}
