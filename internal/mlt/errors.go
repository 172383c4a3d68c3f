package mlt

import "errors"

// ErrInvalidTimeline indicates a Config whose chunks do not tile
// [0, Duration) or that lacks a duration or resource.
var ErrInvalidTimeline = errors.New("invalid timeline")

// ErrOutputExists indicates the destination document already exists.
var ErrOutputExists = errors.New("output file already exists")

// ErrWriteFailed indicates the destination document could not be created or written.
var ErrWriteFailed = errors.New("cannot write timeline document")
