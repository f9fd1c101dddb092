// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// Seconds returns d rounded to the nearest whole second.
func Seconds(d time.Duration) int {
	return Round(d.Seconds())
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	mins = val / secondsInAMinute
	secs = val % secondsInAMinute

	return
}

// Clock formats a seconds value as MM:SS. Minutes are not capped at 59.
func Clock(secs int) string {
	if secs < 0 {
		secs = 0
	}

	m, s := SecsToMinsAndSecs(secs)

	return fmt.Sprintf("%02d:%02d", m, s)
}

// Human formats a seconds value as "Xm Ys".
func Human(secs int) string {
	m, s := SecsToMinsAndSecs(secs)

	return fmt.Sprintf("%dm %ds", m, s)
}

// FromStr parses a human date such as "2 weeks ago", "yesterday" or
// "2025-03-01" relative to now.
func FromStr(str string, now time.Time) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}

	dt, err := dateparser.Parse(cfg, str)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}
