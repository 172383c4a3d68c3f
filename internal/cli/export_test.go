package cli

// Export internal functions for testing.

// RunSilence exports runSilence for testing.
var RunSilence = runSilence

// SilenceOptions exports silenceOptions for testing.
type SilenceOptions = silenceOptions

// RunConcat exports runConcat for testing.
var RunConcat = runConcat

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// CheckOutput exports checkOutput for testing.
var CheckOutput = checkOutput

// FirstNonEmpty exports firstNonEmpty for testing.
var FirstNonEmpty = firstNonEmpty
