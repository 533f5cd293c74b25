package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Meridiem is the AM/PM half of a 12-hour clock value.
type Meridiem string

const (
	// AM marks hours before noon.
	AM Meridiem = "AM"
	// PM marks hours from noon on.
	PM Meridiem = "PM"
)

const (
	// Layout is the time layout of every alarm value.
	Layout = "03:04 PM"

	minHour   = 1
	maxHour   = 12
	minMinute = 0
	maxMinute = 59
)

var (
	// ErrInvalidHour is returned for hours outside 1-12.
	ErrInvalidHour = errors.New("hour must be between 1 and 12")
	// ErrInvalidMinute is returned for minutes outside 0-59.
	ErrInvalidMinute = errors.New("minute must be between 0 and 59")
	// ErrInvalidMeridiem is returned when the AM/PM token is not recognised.
	ErrInvalidMeridiem = errors.New("meridiem must be AM or PM")
	// ErrInvalidValue is returned when a string is not in "HH:MM AM/PM" form.
	ErrInvalidValue = errors.New(`alarm must look like "HH:MM AM"`)
)

// ParseMeridiem normalises s and checks it is AM or PM.
func ParseMeridiem(s string) (Meridiem, error) {
	switch m := Meridiem(strings.ToUpper(strings.TrimSpace(s))); m {
	case AM, PM:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMeridiem, s)
	}
}

// Format validates the parts of an alarm and returns its canonical value,
// e.g. Format(7, 5, "pm") == "07:05 PM".
func Format(hour, minute int, meridiem string) (string, error) {
	m, err := ParseMeridiem(meridiem)
	if err != nil {
		return "", err
	}

	if hour < minHour || hour > maxHour {
		return "", fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}

	if minute < minMinute || minute > maxMinute {
		return "", fmt.Errorf("%w: %d", ErrInvalidMinute, minute)
	}

	return fmt.Sprintf("%02d:%02d %s", hour, minute, m), nil
}

// Parse splits a canonical alarm value into its 12-hour parts.
func Parse(value string) (int, int, Meridiem, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}

	// time.Parse accepts "00:MM AM"; the canonical form never produces it.
	if t.Format(Layout) != value {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}

	hour := t.Hour() % maxHour
	if hour == 0 {
		hour = maxHour
	}

	meridiem := AM
	if t.Hour() >= maxHour {
		meridiem = PM
	}

	return hour, t.Minute(), meridiem, nil
}

// FromTime renders t the way alarms are stored, so the two compare equal
// during the matching minute.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// Matches reports whether the current time string fires the alarm.
func Matches(current, alarm string) bool {
	return current == alarm
}
