package sched

import (
	"github.com/shirou/gopsutil/v4/process"
)

// CPUSampler reports per-process and aggregate CPU usage.
type CPUSampler interface {
	// SampleTotal returns the aggregate CPU percentage across all
	// processes. 100 represents one fully utilized core, so the value
	// exceeds 100 on loaded multi-core machines. The only contract is
	// monotonic comparability against the total-load threshold.
	SampleTotal() float64

	// SampleProcess returns the CPU percentage attributable to one
	// process since the previous sample, or 0 if the process has exited
	// or sampling fails. It never aborts classification of the
	// remaining candidates.
	SampleProcess(pid int32) float64
}

// ProcSampler samples CPU usage through gopsutil. Process handles are
// cached between cycles: gopsutil computes CPU percent as a delta since
// the previous call on the same handle, so reusing handles yields
// usage-since-last-scan rather than usage-since-process-start.
type ProcSampler struct {
	handles map[int32]*process.Process
}

// NewProcSampler returns a sampler with an empty handle cache.
func NewProcSampler() *ProcSampler {
	return &ProcSampler{
		handles: make(map[int32]*process.Process),
	}
}

// handle returns the cached process handle for pid, creating one on first
// use. Returns nil if the process does not exist.
func (s *ProcSampler) handle(pid int32) *process.Process {
	if p, ok := s.handles[pid]; ok {
		return p
	}
	p, err := process.NewProcess(pid)
	if err != nil {
		return nil
	}
	s.handles[pid] = p
	return p
}

// SampleProcess implements CPUSampler.
func (s *ProcSampler) SampleProcess(pid int32) float64 {
	p := s.handle(pid)
	if p == nil {
		return 0
	}
	percent, err := p.CPUPercent()
	if err != nil {
		// The process exited between enumeration and sampling.
		delete(s.handles, pid)
		return 0
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// SampleTotal implements CPUSampler. It sums per-process usage over the
// full process table, pruning cache entries for processes that are gone.
func (s *ProcSampler) SampleTotal() float64 {
	procs, err := process.Processes()
	if err != nil {
		return 0
	}

	var total float64
	for _, p := range procs {
		total += s.SampleProcess(p.Pid)
	}
	return total
}
