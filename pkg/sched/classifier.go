package sched

import (
	"github.com/studentiz/Yawning/pkg/yawning/logging"
)

// Classifier decides, per candidate PID, whether to request efficiency or
// performance core affinity, and suppresses duplicate requests through the
// affinity state. Candidates are evaluated independently, so classification
// of a cycle is order-independent.
type Classifier struct {
	cfg     Config
	state   *AffinityState
	sampler CPUSampler
	hinter  Hinter
	log     *logging.Logger
}

// NewClassifier returns a classifier over the given collaborators.
func NewClassifier(cfg Config, state *AffinityState, sampler CPUSampler, hinter Hinter) *Classifier {
	return &Classifier{
		cfg:     cfg,
		state:   state,
		sampler: sampler,
		hinter:  hinter,
		log:     logging.Get("classifier"),
	}
}

// Classify evaluates one candidate against the sampled total load and
// applies a hint if the PID's class changed. It reports whether a new
// efficiency-class assignment was made; only that transition feeds the
// interval controller's decrease signal.
func (c *Classifier) Classify(pid int32, totalLoad float64) (newAssignment bool) {
	if c.cfg.Balance {
		usage := c.sampler.SampleProcess(pid)
		if totalLoad > c.cfg.TotalLoadThreshold && usage > c.cfg.PerProcessThreshold {
			c.promote(pid, usage, totalLoad)
			return false
		}
	}
	return c.demote(pid)
}

// promote moves a heavy candidate to performance cores. Already-promoted
// PIDs are left alone so a busy process does not trigger a hint call every
// cycle.
func (c *Classifier) promote(pid int32, usage, totalLoad float64) {
	if c.state.OnPerformance(pid) {
		return
	}
	if err := c.hinter.ApplyHint(pid, Performance); err != nil {
		c.log.Debug("performance hint failed", "pid", pid, "error", err)
		return
	}
	c.state.MarkPerformance(pid)
	c.log.Info("promoted to performance cores", "pid", pid, "cpu", usage, "load", totalLoad)
}

// demote moves a light candidate to efficiency cores. Returns true only
// when a new assignment was actually made.
func (c *Classifier) demote(pid int32) bool {
	if c.state.OnEfficiency(pid) {
		return false
	}
	if err := c.hinter.ApplyHint(pid, Efficiency); err != nil {
		c.log.Debug("efficiency hint failed", "pid", pid, "error", err)
		return false
	}
	c.state.MarkEfficiency(pid)
	c.log.Debug("moved to efficiency cores", "pid", pid)
	return true
}

// PinForeground assigns the frontmost process to efficiency cores
// unconditionally: no heavy/light test, no duplicate suppression, and no
// decrease signal. It applies once per cycle regardless of candidate-set
// membership.
func (c *Classifier) PinForeground(pid int32) {
	if err := c.hinter.ApplyHint(pid, Efficiency); err != nil {
		c.log.Debug("foreground hint failed", "pid", pid, "error", err)
		return
	}
	c.state.MarkEfficiency(pid)
}
