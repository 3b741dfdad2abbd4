// Package meta implements the hybrid matcher: a thin orchestrator that
// compiles a pattern once into {optional prefilter, optional DFA,
// always-present NFA} and dispatches each search to whichever of those
// the pattern's analysis.PatternProperties selected.
package meta

import "github.com/coregx/rex/dfa"

// Config controls compilation behavior: which engines are eligible to
// build, and the bounds each one is built with.
type Config struct {
	// EnableDFA enables attempting to build a DFA for DFA-eligible
	// patterns. When false, every pattern runs on the NFA engine.
	// Default: true.
	EnableDFA bool

	// EnablePrefilter enables building a literal prefilter from the
	// pattern's extracted literals. Default: true.
	EnablePrefilter bool

	// MaxDFAStates caps how many states eager subset construction may
	// produce before giving up and falling back to the NFA engine.
	// Default: 65535.
	MaxDFAStates int

	// MaxUnroll caps how many times a bounded quantifier may be unrolled
	// during DFA construction. Default: 1024 (analysis.MaxQuantifierCap).
	MaxUnroll int

	// StepBudget caps how many interpreter steps a single NFA match
	// attempt may take before giving up with a budget-exceeded error.
	// Default: 10,000,000.
	StepBudget uint64

	// CacheSize bounds the process-wide compiled-pattern cache's entry
	// count. Default: 1024.
	CacheSize int
}

// DefaultConfig returns the configuration Compile uses when the caller
// doesn't supply one.
func DefaultConfig() Config {
	return Config{
		EnableDFA:       true,
		EnablePrefilter: true,
		MaxDFAStates:    0xFFFF,
		MaxUnroll:       1024,
		StepBudget:      10_000_000,
		CacheSize:       1024,
	}
}

func (c Config) dfaConfig() dfa.Config {
	return dfa.Config{MaxStates: c.MaxDFAStates, MaxUnroll: c.MaxUnroll}
}

// Validate checks c's fields are within acceptable ranges.
func (c Config) Validate() error {
	if c.MaxDFAStates < 1 || c.MaxDFAStates > 1_000_000 {
		return &ConfigError{Field: "MaxDFAStates", Message: "must be between 1 and 1,000,000"}
	}
	if c.MaxUnroll < 1 || c.MaxUnroll > 100_000 {
		return &ConfigError{Field: "MaxUnroll", Message: "must be between 1 and 100,000"}
	}
	if c.StepBudget < 1000 {
		return &ConfigError{Field: "StepBudget", Message: "must be at least 1,000"}
	}
	if c.CacheSize < 0 {
		return &ConfigError{Field: "CacheSize", Message: "must be >= 0"}
	}
	return nil
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "rex: invalid config: " + e.Field + ": " + e.Message
}
