// Package config reads and writes the user configuration file, a plain
// key=value file under the XDG config directory, with CUTBOT_* environment
// variables as fallbacks.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-cutbot/internal/format"
	"github.com/alnah/go-cutbot/internal/silence"
)

// Config keys.
const (
	KeyFFmpegPath      = "ffmpeg-path"
	KeyMeltPath        = "melt-path"
	KeySilenceNoise    = "silence-noise"
	KeySilenceDuration = "silence-duration"
	KeyLoudNoise       = "loud-noise"
	KeyLoudDuration    = "loud-duration"
	KeyOutputName      = "output-name"
)

// Environment variable fallbacks.
const (
	EnvFFmpegPath      = "CUTBOT_FFMPEG_PATH"
	EnvMeltPath        = "CUTBOT_MELT_PATH"
	EnvSilenceNoise    = "CUTBOT_SILENCE_NOISE"
	EnvSilenceDuration = "CUTBOT_SILENCE_DURATION"
	EnvLoudNoise       = "CUTBOT_LOUD_NOISE"
	EnvLoudDuration    = "CUTBOT_LOUD_DURATION"
	EnvOutputName      = "CUTBOT_OUTPUT_NAME"
)

// DefaultOutputName is the timeline file name written next to the media.
const DefaultOutputName = "output.mlt"

// envFallbacks maps each key to its environment variable.
var envFallbacks = map[string]string{
	KeyFFmpegPath:      EnvFFmpegPath,
	KeyMeltPath:        EnvMeltPath,
	KeySilenceNoise:    EnvSilenceNoise,
	KeySilenceDuration: EnvSilenceDuration,
	KeyLoudNoise:       EnvLoudNoise,
	KeyLoudDuration:    EnvLoudDuration,
	KeyOutputName:      EnvOutputName,
}

// Sentinel errors.
var (
	ErrInvalidSyntax = errors.New("invalid config syntax")
	ErrInvalidKey    = errors.New("invalid config key")
	ErrUnknownKey    = errors.New("unknown config key")
	ErrInvalidValue  = errors.New("invalid config value")
)

// Config holds user configuration loaded from ~/.config/cutbot/config.
// Unset tool paths stay empty so the resolver can fall back further.
type Config struct {
	FFmpegPath string
	MeltPath   string
	Silence    silence.Thresholds
	Loud       silence.Thresholds
	OutputName string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Silence:    silence.DefaultSilenceThresholds,
		Loud:       silence.DefaultLoudThresholds,
		OutputName: DefaultOutputName,
	}
}

// Keys returns every known key in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(envFallbacks))
}

// EnvVar returns the environment variable that backs key, or "" for an
// unknown key.
func EnvVar(key string) string {
	return envFallbacks[key]
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/cutbot.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cutbot"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cutbot"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks,
// then Defaults. A missing file is not an error.
func Load() (Config, error) {
	cfg := Defaults()

	p, err := path()
	if err != nil {
		return cfg, err
	}

	data, err := parseFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		data = make(map[string]string)
	}

	// Environment variable fallback (only if not set in config).
	for key, env := range envFallbacks {
		if data[key] == "" {
			if v := os.Getenv(env); v != "" {
				data[key] = v
			}
		}
	}

	if err := apply(&cfg, data); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// apply copies the known keys of data into cfg, parsing typed values.
// Unknown keys are ignored so older binaries can read newer files.
func apply(cfg *Config, data map[string]string) error {
	if v := data[KeyFFmpegPath]; v != "" {
		cfg.FFmpegPath = ExpandPath(v)
	}
	if v := data[KeyMeltPath]; v != "" {
		cfg.MeltPath = ExpandPath(v)
	}
	if v := data[KeyOutputName]; v != "" {
		cfg.OutputName = v
	}

	fields := []struct {
		key   string
		noise bool
		th    *silence.Thresholds
	}{
		{KeySilenceNoise, true, &cfg.Silence},
		{KeySilenceDuration, false, &cfg.Silence},
		{KeyLoudNoise, true, &cfg.Loud},
		{KeyLoudDuration, false, &cfg.Loud},
	}
	for _, f := range fields {
		v := data[f.key]
		if v == "" {
			continue
		}
		if f.noise {
			db, err := ParseNoise(v)
			if err != nil {
				return fmt.Errorf("%s: %w", f.key, err)
			}
			f.th.NoiseDB = db
		} else {
			d, err := ParseSeconds(v)
			if err != nil {
				return fmt.Errorf("%s: %w", f.key, err)
			}
			f.th.MinDuration = d
		}
	}

	if err := cfg.Silence.Validate(); err != nil {
		return fmt.Errorf("silence thresholds: %w", err)
	}
	if err := cfg.Loud.Validate(); err != nil {
		return fmt.Errorf("loud thresholds: %w", err)
	}
	return nil
}

// ParseNoise parses a noise floor such as "-60", "-60dB" or "-42.5 dB".
func ParseNoise(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(trimmed, "dB"), "db"))
	db, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: noise floor %q is not a number of decibels", ErrInvalidValue, s)
	}
	return db, nil
}

// ParseSeconds parses a minimum duration given either as bare seconds
// ("0.5") or as a Go duration ("500ms").
func ParseSeconds(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if sec, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return format.Seconds(sec), nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q is neither seconds nor a Go duration", ErrInvalidValue, s)
	}
	return d, nil
}

// Validate checks that value is acceptable for key before it is saved.
func Validate(key, value string) error {
	if _, ok := envFallbacks[key]; !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, key)
	}

	cfg := Defaults()
	if err := apply(&cfg, map[string]string{key: value}); err != nil {
		return err
	}

	if key == KeyOutputName && filepath.Base(value) != value {
		return fmt.Errorf("%w: %s must be a file name, not a path: %q", ErrInvalidValue, key, value)
	}
	return nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w at line %d: %q", ErrInvalidSyntax, lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\n\r#") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: value for %s spans several lines", ErrInvalidValue, key)
	}

	p, err := path()
	if err != nil {
		return err
	}

	d := filepath.Dir(p)
	if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, err := parseFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		existing = make(map[string]string)
	}

	existing[key] = value

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted.
func writeFile(p string, data map[string]string) error {
	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, key := range slices.Sorted(maps.Keys(data)) {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	p, err := path()
	if err != nil {
		return "", err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return data[key], nil
}

// List returns all config values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	return data, nil
}

// ResolveOutputPath resolves the final output path using the following precedence:
//  1. If output is absolute, use it as-is
//  2. If output is relative and outputDir is set, join them
//  3. If output is empty, use defaultName in outputDir (or cwd if no outputDir)
//
// For the silence command outputDir is the directory of the media file.
func ResolveOutputPath(output, outputDir, defaultName string) string {
	if output != "" && filepath.IsAbs(output) {
		return filepath.Clean(output)
	}

	if output != "" {
		if outputDir != "" {
			return filepath.Clean(filepath.Join(outputDir, output))
		}
		return filepath.Clean(output)
	}

	if outputDir != "" {
		return filepath.Clean(filepath.Join(outputDir, defaultName))
	}
	return filepath.Clean(defaultName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}

// Path returns the configuration file path.
func Path() (string, error) {
	return path()
}
