// Copyright © 2021 Io FinNet Group, Inc.

package dlog

const (
	// MaxBoundExp is the largest supported x_max_exp; answers are returned as uint64.
	MaxBoundExp = 64

	// maxTableHint caps the capacity hint of the baby-step table.
	maxTableHint = 1 << 24

	defaultProgressInterval = 1 << 20
)

// DuplicatePolicy decides which baby-step index is kept when two indices give the
// same table value. Duplicates only occur when the order of g is at most the number
// of baby steps.
type DuplicatePolicy int

const (
	// FirstWins keeps the smallest index, so the solver returns the smallest x.
	FirstWins DuplicatePolicy = iota
	// LastWins keeps the largest index.
	LastWins
)

func (d DuplicatePolicy) String() string {
	switch d {
	case FirstWins:
		return "first-wins"
	case LastWins:
		return "last-wins"
	default:
		return "unknown"
	}
}

type (
	Option func(*config)

	config struct {
		duplicates       DuplicatePolicy
		progressInterval uint64
		maxBoundExp      uint
	}
)

func defaultConfig() config {
	return config{
		duplicates:       FirstWins,
		progressInterval: defaultProgressInterval,
		maxBoundExp:      MaxBoundExp,
	}
}

func WithDuplicatePolicy(d DuplicatePolicy) Option {
	return func(c *config) {
		c.duplicates = d
	}
}

// WithProgressInterval logs progress at debug level every n steps; 0 disables it.
func WithProgressInterval(n uint64) Option {
	return func(c *config) {
		c.progressInterval = n
	}
}

// WithMaxBoundExp lowers the largest accepted x_max_exp, e.g. to bound memory use.
// Values above MaxBoundExp are ignored.
func WithMaxBoundExp(e uint) Option {
	return func(c *config) {
		if e <= MaxBoundExp {
			c.maxBoundExp = e
		}
	}
}
