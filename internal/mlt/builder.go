package mlt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alnah/go-cutbot/internal/format"
	"github.com/alnah/go-cutbot/internal/silence"
)

// Config describes the timeline to build.
type Config struct {
	// Chunks must tile [0, Duration) in order, as silence.Segment produces.
	Chunks []silence.Chunk
	// Duration is the total length of Resource.
	Duration time.Duration
	// Resource is the media path every chain points at.
	Resource string
	// Profile is the project video format. The zero value means DefaultProfile.
	Profile Profile
}

// Build assembles the document for cfg.
//
// The result holds one chain per chunk, each spanning the whole resource,
// and one playlist entry per chunk selecting that chunk's window from its
// chain. Entry i always references chain i.
func Build(cfg Config) (*Document, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	profile := cfg.Profile
	if profile == (Profile{}) {
		profile = DefaultProfile
	}

	zero := format.Timecode(0)
	total := format.Timecode(cfg.Duration)

	doc := &Document{
		Profile: profile,
		MainBin: Playlist{ID: MainBinID},
		Black: Producer{
			ID:  BlackID,
			In:  zero,
			Out: total,
			Properties: []Property{
				{Name: "length", Value: total},
				{Name: "eof", Value: "pause"},
				{Name: "resource", Value: "0"},
				{Name: "aspect_ratio", Value: "1"},
				{Name: "mlt_service", Value: "color"},
				{Name: "mlt_image_format", Value: "rgba"},
				{Name: "set.test_audio", Value: "0"},
			},
		},
		Background: Playlist{
			ID:      BackgroundID,
			Entries: []Entry{{Producer: BlackID, In: zero, Out: total}},
		},
		Chains: make([]Chain, 0, len(cfg.Chunks)),
		Playlist: Playlist{
			ID: PlaylistID,
			Properties: []Property{
				{Name: "shotcut:video", Value: "1"},
				{Name: "shotcut:name", Value: "V1"},
			},
			Entries: make([]Entry, 0, len(cfg.Chunks)),
		},
		Tractor: Tractor{
			ID:  TractorID,
			In:  zero,
			Out: total,
			Properties: []Property{
				{Name: "shotcut", Value: "1"},
				{Name: "shotcut:projectAudioChannels", Value: "2"},
				{Name: "shotcut:projectFolder", Value: "0"},
				{Name: "shotcut:skipConvert", Value: "0"},
			},
			Tracks: []Track{{Producer: BackgroundID}, {Producer: PlaylistID}},
		},
	}

	for i, c := range cfg.Chunks {
		id := ChainID(i)
		doc.Chains = append(doc.Chains, Chain{
			ID:         id,
			In:         zero,
			Out:        total,
			Properties: []Property{{Name: "resource", Value: cfg.Resource}},
		})
		doc.Playlist.Entries = append(doc.Playlist.Entries, Entry{
			Producer: id,
			In:       format.Timecode(c.Start),
			Out:      format.Timecode(c.End),
		})
	}

	return doc, nil
}

// ChainID returns the identifier of the chain for chunk i.
func ChainID(i int) string {
	return "chain" + strconv.Itoa(i)
}

// validate checks that cfg describes a complete gapless timeline at the
// millisecond resolution the document is written with.
func validate(cfg Config) error {
	if cfg.Duration.Truncate(silence.Resolution) <= 0 {
		return fmt.Errorf("%w: duration must be at least %v, got %v", ErrInvalidTimeline, silence.Resolution, cfg.Duration)
	}
	if cfg.Resource == "" {
		return fmt.Errorf("%w: resource path is empty", ErrInvalidTimeline)
	}
	if len(cfg.Chunks) == 0 {
		return fmt.Errorf("%w: no chunks", ErrInvalidTimeline)
	}

	var cursor time.Duration
	for i, c := range cfg.Chunks {
		if c.Start != cursor {
			return fmt.Errorf("%w: chunk %d starts at %s, want %s",
				ErrInvalidTimeline, i, format.Timecode(c.Start), format.Timecode(cursor))
		}
		if c.End.Truncate(silence.Resolution) <= c.Start.Truncate(silence.Resolution) {
			return fmt.Errorf("%w: chunk %d is empty at %s", ErrInvalidTimeline, i, format.Timecode(c.Start))
		}
		cursor = c.End
	}
	if cursor.Truncate(silence.Resolution) != cfg.Duration.Truncate(silence.Resolution) {
		return fmt.Errorf("%w: chunks end at %s, want %s",
			ErrInvalidTimeline, format.Timecode(cursor), format.Timecode(cfg.Duration))
	}
	return nil
}
