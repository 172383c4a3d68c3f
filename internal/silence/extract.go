package silence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-cutbot/internal/format"
)

// Patterns for ffmpeg diagnostics. silencedetect prints lines like:
//
//	[silencedetect @ 0x...] silence_start: 42.123
//	[silencedetect @ 0x...] silence_end: 43.456 | silence_duration: 1.333
//
// and the input summary carries "  Duration: 00:05:23.45, start: ...".
var (
	durationRe     = regexp.MustCompile(`Duration: (\d+):(\d+):(\d+)\.(\d+)`)
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(\d+\.?\d*)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(\d+\.?\d*)`)
)

// ParseDuration extracts the total media duration from ffmpeg output.
// The fractional field is scaled by its digit count, so "00:01:40.00" is
// 100s and "00:00:05.4" is 5.4s.
func ParseDuration(output string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(output)
	if m == nil {
		return 0, ErrNoDuration
	}
	d, err := format.Clock(m[1], m[2], m[3], m[4])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoDuration, err)
	}
	return d, nil
}

// ParseSilenceStarts returns every silence_start mark in line order.
func ParseSilenceStarts(output string) []time.Duration {
	return parseMarks(output, silenceStartRe)
}

// ParseLoudStarts returns every silence_end mark in line order. A silence
// ending is where loud material resumes.
func ParseLoudStarts(output string) []time.Duration {
	return parseMarks(output, silenceEndRe)
}

// parseMarks collects the first capture of re on each line.
// Lines whose capture is not a valid number are skipped.
func parseMarks(output string, re *regexp.Regexp) []time.Duration {
	var marks []time.Duration
	for line := range strings.SplitSeq(output, "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		seconds, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		marks = append(marks, format.Seconds(seconds))
	}
	return marks
}
