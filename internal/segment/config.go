package segment

import (
	"fmt"
	"runtime"
)

const (
	// DefaultThreshold is the default foreground cutoff: pixels with
	// intensity at or below it count as ink.
	DefaultThreshold = 180

	// DefaultSpacing is the default minimum run of blank columns that
	// separates two words. Shorter gaps (the stroke gap in "i" or "T")
	// stay inside one word.
	DefaultSpacing = 5
)

// Config carries the segmentation parameters. The same values apply to
// every stage operating on a page; they are passed explicitly into
// each call, never held in process-wide state.
type Config struct {
	// Threshold is the foreground cutoff on the 0-255 intensity scale.
	Threshold int

	// Spacing is the minimum consecutive blank-column run required to
	// split two words.
	Spacing int

	// Workers is the parallel worker-pool size. Zero or negative means
	// available parallelism.
	Workers int
}

// DefaultConfig returns the standard parameters: threshold 180,
// spacing 5, workers sized to available parallelism.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Spacing:   DefaultSpacing,
		Workers:   runtime.NumCPU(),
	}
}

func (c Config) validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold %d outside 0-255 range", c.Threshold)
	}
	if c.Spacing < 1 {
		return fmt.Errorf("spacing must be at least 1, got %d", c.Spacing)
	}
	return nil
}

// workers resolves the effective pool size.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
