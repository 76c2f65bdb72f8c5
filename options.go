package serz

import "sync"

// Options bundles the process-wide conversion settings.
type Options struct {
	// DisallowMissingContainers makes a missing key for a sequence or map
	// field a required error instead of leaving the field empty.
	DisallowMissingContainers bool
}

var (
	optionsMu sync.RWMutex
	options   Options
)

// SetOptions replaces the global options.
func SetOptions(o Options) {
	optionsMu.Lock()
	options = o
	optionsMu.Unlock()
}

// CurrentOptions returns a copy of the global options.
func CurrentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return options
}

// ResetOptions restores the zero Options.
func ResetOptions() { SetOptions(Options{}) }
