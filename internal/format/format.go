// Package format converts durations to and from the textual forms used by
// ffmpeg diagnostics, MLT documents and terminal output.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Duration formats a duration as HH:MM:SS or MM:SS.
func Duration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// DurationHuman formats a duration for human display.
// Examples: "2h", "30m", "1h30m", "45s"
func DurationHuman(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	return fmt.Sprintf("%ds", d/time.Second)
}

// Timecode formats d as HH:MM:SS.mmm, the clock value form MLT accepts for
// in/out attributes. Sub-millisecond precision is truncated, never rounded,
// so the seconds field can not overflow to 60.
func Timecode(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := int64(d / time.Millisecond)
	h := ms / 3_600_000
	m := (ms / 60_000) % 60
	s := (ms / 1000) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

// ParseTimecode parses HH:MM:SS[.fff...] back into a duration.
// The fractional field is scaled by its own digit count.
func ParseTimecode(tc string) (time.Duration, error) {
	parts := strings.Split(tc, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timecode %q: want HH:MM:SS.mmm", tc)
	}
	secs, frac, _ := strings.Cut(parts[2], ".")
	return Clock(parts[0], parts[1], secs, frac)
}

// Clock assembles a duration from the decimal strings of a clock value.
// frac holds the digits after the decimal point ("4" is 400ms, "45" is
// 450ms, "456789" is 456.789ms). Digits beyond nanoseconds are dropped.
func Clock(hours, minutes, seconds, frac string) (time.Duration, error) {
	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: %w", hours, err)
	}
	m, err := strconv.ParseInt(minutes, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q: %w", minutes, err)
	}
	s, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q: %w", seconds, err)
	}

	var ns int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fraction %q: %w", frac, err)
		}
		ns = f * int64(math.Pow10(9-len(frac)))
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ns), nil
}

// Seconds converts fractional seconds to a duration, rounded to the nearest
// nanosecond so values like 1.5 or 3.25 survive the conversion exactly.
// Values beyond the range of time.Duration saturate.
func Seconds(sec float64) time.Duration {
	ns := math.Round(sec * float64(time.Second))
	switch {
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}
