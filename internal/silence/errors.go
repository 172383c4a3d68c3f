package silence

import "errors"

// ErrNoDuration indicates the analysis output carried no "Duration:" line.
var ErrNoDuration = errors.New("duration not found in analysis output")

// ErrOrdering indicates loud marks that are not ascending or fall past the
// media duration. Segmenting them would produce overlapping chunks.
var ErrOrdering = errors.New("loud marks out of order")

// ErrInvalidDuration indicates a media duration that is zero or negative.
var ErrInvalidDuration = errors.New("invalid media duration")

// ErrInvalidThreshold indicates a silencedetect threshold outside its valid range.
var ErrInvalidThreshold = errors.New("invalid silence threshold")
