package sched

import (
	"context"
	"time"

	"github.com/studentiz/Yawning/pkg/yawning/logging"
)

// Loop runs the scan cycle until its context is canceled. One cycle:
// acquire candidates, resolve the foreground process, classify every
// candidate, pin the foreground, recompute the interval, sleep. Cycles are
// strictly sequential; the loop goroutine is the only reader and writer of
// the affinity state and the interval value.
type Loop struct {
	cfg        Config
	source     ProcessSource
	foreground ForegroundResolver
	sampler    CPUSampler
	classifier *Classifier
	log        *logging.Logger

	sleepSeconds int
}

// NewLoop wires a scan loop from its collaborators. The foreground
// resolver is replaced with NoForeground when tracking is disabled.
func NewLoop(cfg Config, source ProcessSource, foreground ForegroundResolver, sampler CPUSampler, hinter Hinter) *Loop {
	if !cfg.TrackForeground || foreground == nil {
		foreground = NoForeground{}
	}
	return &Loop{
		cfg:          cfg,
		source:       source,
		foreground:   foreground,
		sampler:      sampler,
		classifier:   NewClassifier(cfg, NewAffinityState(), sampler, hinter),
		log:          logging.Get("loop"),
		sleepSeconds: InitialInterval,
	}
}

// Run executes scan cycles until ctx is canceled. Cancellation is only
// observed between cycles and during the end-of-cycle sleep; assignments
// already made are not reverted on stop.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("scan loop started", "config", l.cfg.Describe(), "interval", l.sleepSeconds)

	for {
		l.runCycle()

		select {
		case <-ctx.Done():
			l.log.Info("scan loop stopped")
			return ctx.Err()
		case <-time.After(time.Duration(l.sleepSeconds) * time.Second):
		}
	}
}

// runCycle performs one full scan cycle and updates the interval.
func (l *Loop) runCycle() {
	pids := l.source.Candidates()

	// Total load is sampled once per cycle; classification stays
	// order-independent because every candidate sees the same value.
	var totalLoad float64
	if l.cfg.Balance {
		totalLoad = l.sampler.SampleTotal()
	}

	newAssignments := 0
	for _, pid := range pids {
		if l.classifier.Classify(pid, totalLoad) {
			newAssignments++
			l.sleepSeconds = DecreaseOnAssignment(l.sleepSeconds)
		}
	}

	// The foreground process is always a hint target, even when the
	// candidate query would not have returned it.
	if fg, ok := l.foreground.ForegroundPID(); ok {
		l.classifier.PinForeground(fg)
	}

	l.sleepSeconds = NextInterval(l.sleepSeconds)

	eff, perf := l.classifier.state.Counts()
	l.log.Debug("cycle complete",
		"candidates", len(pids),
		"load", totalLoad,
		"new", newAssignments,
		"efficiency", eff,
		"performance", perf,
		"next", l.sleepSeconds)
}
