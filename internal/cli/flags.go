package cli

import (
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/alnah/go-cutbot/internal/config"
	"github.com/alnah/go-cutbot/internal/silence"
)

// Threshold flag names.
const (
	flagSilenceNoise    = "silence-noise"
	flagSilenceDuration = "silence-duration"
	flagLoudNoise       = "loud-noise"
	flagLoudDuration    = "loud-duration"
)

// noiseFlag is a pflag.Value for a noise floor in dB ("-60", "-60dB").
type noiseFlag struct{ db *float64 }

func (f noiseFlag) String() string {
	if f.db == nil {
		return ""
	}
	return strconv.FormatFloat(*f.db, 'f', -1, 64) + "dB"
}

func (f noiseFlag) Set(s string) error {
	db, err := config.ParseNoise(s)
	if err != nil {
		return err
	}
	*f.db = db
	return nil
}

func (noiseFlag) Type() string { return "dB" }

// secondsFlag is a pflag.Value for a minimum duration ("0.5", "500ms").
type secondsFlag struct{ d *time.Duration }

func (f secondsFlag) String() string {
	if f.d == nil {
		return ""
	}
	return strconv.FormatFloat(f.d.Seconds(), 'f', -1, 64) + "s"
}

func (f secondsFlag) Set(s string) error {
	d, err := config.ParseSeconds(s)
	if err != nil {
		return err
	}
	*f.d = d
	return nil
}

func (secondsFlag) Type() string { return "seconds" }

// Compile-time interface verification.
var (
	_ pflag.Value = noiseFlag{}
	_ pflag.Value = secondsFlag{}
)

// thresholdFlags holds the values of the four threshold flags.
// They start at the built-in defaults so --help shows them.
type thresholdFlags struct {
	silence silence.Thresholds
	loud    silence.Thresholds
}

func newThresholdFlags() *thresholdFlags {
	return &thresholdFlags{
		silence: silence.DefaultSilenceThresholds,
		loud:    silence.DefaultLoudThresholds,
	}
}

// register adds the threshold flags to fs.
func (tf *thresholdFlags) register(fs *pflag.FlagSet) {
	fs.Var(noiseFlag{&tf.silence.NoiseDB}, flagSilenceNoise, "Noise floor of the pass that finds where speech stops")
	fs.Var(secondsFlag{&tf.silence.MinDuration}, flagSilenceDuration, "Shortest silence the silence pass reports")
	fs.Var(noiseFlag{&tf.loud.NoiseDB}, flagLoudNoise, "Noise floor of the pass that finds where speech resumes")
	fs.Var(secondsFlag{&tf.loud.MinDuration}, flagLoudDuration, "Shortest silence the loud pass reports")
}

// overrides returns the flags the user set explicitly. Unset flags leave
// the configured value in place.
func (tf *thresholdFlags) overrides(fs *pflag.FlagSet) thresholdOverrides {
	var o thresholdOverrides
	if fs.Changed(flagSilenceNoise) {
		o.silenceNoise = &tf.silence.NoiseDB
	}
	if fs.Changed(flagSilenceDuration) {
		o.silenceDuration = &tf.silence.MinDuration
	}
	if fs.Changed(flagLoudNoise) {
		o.loudNoise = &tf.loud.NoiseDB
	}
	if fs.Changed(flagLoudDuration) {
		o.loudDuration = &tf.loud.MinDuration
	}
	return o
}

// thresholdOverrides carries explicitly set threshold values; nil means unset.
type thresholdOverrides struct {
	silenceNoise    *float64
	silenceDuration *time.Duration
	loudNoise       *float64
	loudDuration    *time.Duration
}

// apply returns the configured thresholds with the overrides applied.
func (o thresholdOverrides) apply(silenceTh, loudTh silence.Thresholds) (silence.Thresholds, silence.Thresholds) {
	if o.silenceNoise != nil {
		silenceTh.NoiseDB = *o.silenceNoise
	}
	if o.silenceDuration != nil {
		silenceTh.MinDuration = *o.silenceDuration
	}
	if o.loudNoise != nil {
		loudTh.NoiseDB = *o.loudNoise
	}
	if o.loudDuration != nil {
		loudTh.MinDuration = *o.loudDuration
	}
	return silenceTh, loudTh
}
