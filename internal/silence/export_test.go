package silence

// Export internal functions for testing.
// This file is only compiled during tests (suffix _test.go).

// Filter exports Thresholds.filter for testing.
func (th Thresholds) Filter() string {
	return th.filter()
}

// NextSilenceAfter exports nextSilenceAfter for testing.
var NextSilenceAfter = nextSilenceAfter
