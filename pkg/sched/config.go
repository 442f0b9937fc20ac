// Package sched implements the adaptive monitoring-and-classification loop
// of the yawning scheduler. Each cycle it selects candidate processes,
// samples CPU usage, classifies every candidate as light (efficiency cores)
// or heavy (performance cores), applies core-affinity hints, and recomputes
// the delay before the next scan.
//
// All OS-facing concerns (process enumeration, CPU sampling, foreground
// lookup, hint application) sit behind narrow interfaces so the decision
// logic is testable without a heterogeneous-core machine.
package sched

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// SelectionMode controls how candidate processes are chosen each cycle.
type SelectionMode int

const (
	// SelectGlobal scans every non-system process on the machine.
	SelectGlobal SelectionMode = iota

	// SelectByName scans only processes whose command line matches one
	// of the configured patterns.
	SelectByName
)

// String returns the string representation of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectGlobal:
		return "global"
	case SelectByName:
		return "by-name"
	default:
		return "unknown"
	}
}

// Default thresholds, in percent. 100 represents one fully utilized core.
const (
	// DefaultPerProcessThreshold is the per-process CPU percentage above
	// which a process is considered heavy in balance mode.
	DefaultPerProcessThreshold = 80.0

	// DefaultTotalLoadThreshold is the aggregate CPU percentage above
	// which balance mode starts promoting heavy processes.
	DefaultTotalLoadThreshold = 150.0
)

// ErrNoPatterns is returned when by-name selection is requested without
// any name patterns.
var ErrNoPatterns = errors.New("by-name selection requires at least one pattern")

// Config holds the immutable scheduler settings, resolved once at start.
type Config struct {
	// Mode selects global or by-name candidate selection.
	Mode SelectionMode

	// Patterns are command-line patterns for by-name selection. Each
	// entry is compiled as a regular expression; entries that fail to
	// compile are matched as literal substrings instead.
	Patterns []string

	// TrackForeground pins the frontmost process to efficiency cores
	// every cycle when enabled.
	TrackForeground bool

	// Balance enables the heavy/light test. When disabled every
	// candidate is treated as light.
	Balance bool

	// PerProcessThreshold is the per-process CPU percentage a process
	// must exceed to be considered heavy.
	PerProcessThreshold float64

	// TotalLoadThreshold is the aggregate CPU percentage the system must
	// exceed before any process is considered heavy.
	TotalLoadThreshold float64
}

// Normalize applies the selection-mode invariant and fills zero thresholds
// with defaults. Non-empty Patterns force by-name mode: a global flag and
// name patterns are mutually exclusive within a cycle, and patterns win
// no matter the order the options were given in.
func (c Config) Normalize() Config {
	if len(c.Patterns) > 0 {
		c.Mode = SelectByName
	}
	if c.PerProcessThreshold <= 0 {
		c.PerProcessThreshold = DefaultPerProcessThreshold
	}
	if c.TotalLoadThreshold <= 0 {
		c.TotalLoadThreshold = DefaultTotalLoadThreshold
	}
	return c
}

// Validate reports configuration errors that are fatal to startup.
func (c Config) Validate() error {
	if c.Mode == SelectByName && len(c.Patterns) == 0 {
		return ErrNoPatterns
	}
	return nil
}

// matcher matches a process command line against one pattern.
type matcher struct {
	literal string
	re      *regexp.Regexp
}

func (m matcher) matches(cmdline string) bool {
	if m.re != nil {
		return m.re.MatchString(cmdline)
	}
	return m.literal != "" && strings.Contains(cmdline, m.literal)
}

// compileMatchers compiles the configured patterns. Invalid regular
// expressions degrade to case-sensitive substring matches.
func compileMatchers(patterns []string) []matcher {
	matchers := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			matchers = append(matchers, matcher{re: re})
		} else {
			matchers = append(matchers, matcher{literal: p})
		}
	}
	return matchers
}

// Describe returns a one-line summary of the configuration for logs and
// the status command.
func (c Config) Describe() string {
	if c.Mode == SelectByName {
		return fmt.Sprintf("by-name %v (foreground=%t balance=%t cpu>%.0f%% load>%.0f%%)",
			c.Patterns, c.TrackForeground, c.Balance, c.PerProcessThreshold, c.TotalLoadThreshold)
	}
	return fmt.Sprintf("global (foreground=%t balance=%t cpu>%.0f%% load>%.0f%%)",
		c.TrackForeground, c.Balance, c.PerProcessThreshold, c.TotalLoadThreshold)
}
