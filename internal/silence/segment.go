package silence

import (
	"fmt"
	"time"

	"github.com/alnah/go-cutbot/internal/format"
)

// Resolution is the precision of chunk boundaries. Marks and the duration
// are truncated to it, so no chunk rounds to an empty span in a document
// written with millisecond timecodes.
const Resolution = time.Millisecond

// Segment splits [0, duration) into chunks at the detected marks.
//
// Each loud mark opens a loud chunk that runs to the first silence mark
// (in the given order) strictly after it, or to duration if there is none.
// The gap before a loud chunk becomes a silent chunk, and so does whatever
// remains after the last loud chunk. The result always tiles [0, duration)
// exactly: the first chunk starts at 0, each chunk ends where the next
// begins, and the last ends at duration. Chunks shorter than Resolution
// are never produced.
//
// Marks past duration are clamped to it: ffmpeg rounds the reported
// duration to centiseconds but reports the final silence_end at the true
// end of stream. loudStarts must be non-negative and non-decreasing;
// otherwise Segment returns an error wrapping ErrOrdering. A loud mark that
// falls inside the previous loud chunk is absorbed by it. silenceStarts may
// be in any order.
func Segment(loudStarts, silenceStarts []time.Duration, duration time.Duration) ([]Chunk, error) {
	if duration.Truncate(Resolution) <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if err := validateLoudStarts(loudStarts); err != nil {
		return nil, err
	}

	duration = duration.Truncate(Resolution)
	loudStarts = truncateMarks(loudStarts, duration)
	silenceStarts = truncateMarks(silenceStarts, duration)

	chunks := make([]Chunk, 0, 2*len(loudStarts)+1)
	emit := func(start, end time.Duration, loud bool) {
		if end <= start {
			return
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Start: start,
			End:   end,
			Loud:  loud,
		})
	}

	var cursor time.Duration
	for _, loudStart := range loudStarts {
		if cursor < loudStart {
			emit(cursor, loudStart, false)
			cursor = loudStart
		}

		end := nextSilenceAfter(silenceStarts, loudStart, duration)
		if end <= cursor {
			continue
		}
		emit(cursor, end, true)
		cursor = end
	}

	if cursor < duration {
		emit(cursor, duration, false)
	}

	return chunks, nil
}

// nextSilenceAfter returns the first mark in silenceStarts strictly greater
// than t, or fallback if none is. A mark equal to t does not end the span.
func nextSilenceAfter(silenceStarts []time.Duration, t, fallback time.Duration) time.Duration {
	for _, s := range silenceStarts {
		if s > t {
			return s
		}
	}
	return fallback
}

// truncateMarks returns a copy of marks truncated to Resolution and
// clamped to duration.
func truncateMarks(marks []time.Duration, duration time.Duration) []time.Duration {
	out := make([]time.Duration, len(marks))
	for i, m := range marks {
		out[i] = min(m.Truncate(Resolution), duration)
	}
	return out
}

// validateLoudStarts rejects marks that would move the sweep backwards.
func validateLoudStarts(loudStarts []time.Duration) error {
	for i, t := range loudStarts {
		if t < 0 {
			return fmt.Errorf("%w: mark %d at %s is negative", ErrOrdering, i, format.Timecode(t))
		}
		if i > 0 && t < loudStarts[i-1] {
			return fmt.Errorf("%w: mark %d at %s precedes mark %d at %s",
				ErrOrdering, i, format.Timecode(t), i-1, format.Timecode(loudStarts[i-1]))
		}
	}
	return nil
}
