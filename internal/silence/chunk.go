package silence

import (
	"fmt"
	"time"

	"github.com/alnah/go-cutbot/internal/format"
)

// Chunk is a half-open span [Start, End) of the source media.
// A segmentation's chunks tile [0, duration) in order.
type Chunk struct {
	Index int           // Zero-based position in the segmentation.
	Start time.Duration // Inclusive start in the source media.
	End   time.Duration // Exclusive end in the source media.
	Loud  bool          // True for spans opened by a loud mark.
}

// Duration returns the length of this chunk.
func (c Chunk) Duration() time.Duration {
	return c.End - c.Start
}

// String returns a human-readable representation for logging.
func (c Chunk) String() string {
	kind := "silent"
	if c.Loud {
		kind = "loud"
	}
	return fmt.Sprintf("chunk %d: %s-%s (%s)",
		c.Index,
		format.Timecode(c.Start),
		format.Timecode(c.End),
		kind)
}
