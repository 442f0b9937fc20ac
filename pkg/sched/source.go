package sched

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessSource produces the candidate PID set for one scan cycle.
type ProcessSource interface {
	// Candidates returns the PIDs to classify this cycle. When the
	// underlying OS query is unavailable it returns an empty set; the
	// next cycle retries.
	Candidates() []int32
}

// GopsutilSource selects candidates from the live process table according
// to the configured selection mode.
type GopsutilSource struct {
	mode     SelectionMode
	matchers []matcher
	selfPID  int32
}

// NewGopsutilSource returns a process source for the given configuration.
func NewGopsutilSource(cfg Config) *GopsutilSource {
	return &GopsutilSource{
		mode:     cfg.Mode,
		matchers: compileMatchers(cfg.Patterns),
		selfPID:  int32(os.Getpid()),
	}
}

// Candidates implements ProcessSource.
func (s *GopsutilSource) Candidates() []int32 {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	var pids []int32
	for _, p := range procs {
		if s.mode == SelectByName {
			if p.Pid != s.selfPID && s.matchCmdline(p) {
				pids = append(pids, p.Pid)
			}
			continue
		}
		if s.isUserProcess(p) {
			pids = append(pids, p.Pid)
		}
	}
	return pids
}

// isUserProcess reports whether p belongs to a regular user. Processes
// whose owner cannot be resolved are skipped rather than failing the scan.
func (s *GopsutilSource) isUserProcess(p *process.Process) bool {
	user, err := p.Username()
	if err != nil || user == "" {
		return false
	}
	return !excludedUser(user)
}

// excludedUser reports whether a process owner is excluded from global
// scans. Root-owned processes and service accounts whose name begins with
// an underscore stay untouched.
func excludedUser(user string) bool {
	return user == "root" || strings.HasPrefix(user, "_")
}

// matchCmdline reports whether the displayed command line of p matches any
// configured pattern.
func (s *GopsutilSource) matchCmdline(p *process.Process) bool {
	cmdline, err := p.Cmdline()
	if err != nil || cmdline == "" {
		return false
	}
	for _, m := range s.matchers {
		if m.matches(cmdline) {
			return true
		}
	}
	return false
}
