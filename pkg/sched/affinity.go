package sched

// CoreClass is the target core class of an affinity hint.
type CoreClass int

const (
	// Efficiency requests placement on efficiency cores.
	Efficiency CoreClass = iota

	// Performance requests placement on performance cores.
	Performance
)

// String returns the string representation of the class.
func (c CoreClass) String() string {
	switch c {
	case Efficiency:
		return "efficiency"
	case Performance:
		return "performance"
	default:
		return "unknown"
	}
}

// Hinter applies a core-affinity hint to a process. Implementations wrap
// the platform primitive; failures (process exited, permission denied) are
// returned as errors and never abort a scan cycle.
type Hinter interface {
	ApplyHint(pid int32, class CoreClass) error
}

// AffinityState tracks which PIDs are currently believed to be on each
// core class so redundant hint calls can be suppressed. A PID is in at
// most one of the two sets at any time. Entries for exited processes are
// left in place: a dead PID never reappears in the candidate set, so its
// membership is never consulted again.
//
// The state is owned exclusively by the scan loop and needs no locking.
type AffinityState struct {
	onEfficiency  map[int32]struct{}
	onPerformance map[int32]struct{}
}

// NewAffinityState returns an empty affinity state.
func NewAffinityState() *AffinityState {
	return &AffinityState{
		onEfficiency:  make(map[int32]struct{}),
		onPerformance: make(map[int32]struct{}),
	}
}

// OnEfficiency reports whether pid is believed to be on efficiency cores.
func (s *AffinityState) OnEfficiency(pid int32) bool {
	_, ok := s.onEfficiency[pid]
	return ok
}

// OnPerformance reports whether pid is believed to be on performance cores.
func (s *AffinityState) OnPerformance(pid int32) bool {
	_, ok := s.onPerformance[pid]
	return ok
}

// MarkEfficiency records pid as assigned to efficiency cores, removing it
// from the performance set.
func (s *AffinityState) MarkEfficiency(pid int32) {
	delete(s.onPerformance, pid)
	s.onEfficiency[pid] = struct{}{}
}

// MarkPerformance records pid as assigned to performance cores, removing
// it from the efficiency set.
func (s *AffinityState) MarkPerformance(pid int32) {
	delete(s.onEfficiency, pid)
	s.onPerformance[pid] = struct{}{}
}

// Counts returns the number of PIDs in each set.
func (s *AffinityState) Counts() (efficiency, performance int) {
	return len(s.onEfficiency), len(s.onPerformance)
}
