package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/challenge-radar/internal/constants"
)

// DayKey formats a time as the standard day key (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TodayKey returns the current day key.
func TodayKey() string {
	return DayKey(time.Now())
}

// ParseDay parses a day key into midnight local time.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// DaysBetween returns the number of whole days between the start day key
// and the reference instant, flooring toward negative infinity so any
// instant before the start day reports a negative count.
func DaysBetween(startKey string, ref time.Time) (int, error) {
	start, err := ParseDay(startKey)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(ref.Sub(start).Hours() / 24)), nil
}

// ClockKey formats a time as the standard clock key (HH:MM).
func ClockKey(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ParseClock parses a clock key (HH:MM).
func ParseClock(clock string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", clock, err)
	}
	return t, nil
}

// AddMinutesToClock shifts a clock key by the given number of minutes,
// wrapping around midnight in either direction.
func AddMinutesToClock(clock string, minutes int) (string, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	total := t.Hour()*60 + t.Minute() + minutes
	hours := int(math.Floor(float64(total) / 60))
	hh := ((hours % 24) + 24) % 24
	mm := ((total % 60) + 60) % 60
	return fmt.Sprintf("%02d:%02d", hh, mm), nil
}

// ValidateDayFormat checks if the string is a valid day key.
func ValidateDayFormat(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// ValidateClockFormat checks if the string is a valid clock key.
func ValidateClockFormat(clock string) bool {
	_, err := time.Parse(constants.TimeFormat, clock)
	return err == nil
}
