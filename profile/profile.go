package profile

import (
	"path/filepath"
	"slices"
)

// Config selects what to profile and where to write the results.
type Config struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the output directory. Empty selects a temporary directory.
	Path string
	// Label names a subdirectory of Path, so that profiles of different
	// commands do not overwrite each other.
	Label string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Start starts the profiler described by c.
//
// If the pprof build tag is unset, c.Mode is empty, or c.Mode is not one of
// [Modes], Start returns a no-op Stopper. Stop is always safe to call.
func (c Config) Start() Stopper {
	if c.Mode == "" || !slices.Contains(Modes(), c.Mode) {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}

// dir is the output directory: Label beneath Path, when Path is set.
func (c Config) dir() string {
	if c.Path == "" {
		return ""
	}

	return filepath.Join(c.Path, c.Label)
}
