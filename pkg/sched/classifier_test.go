package sched

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSampler returns canned usage values.
type fakeSampler struct {
	total float64
	usage map[int32]float64
}

func (s *fakeSampler) SampleTotal() float64 { return s.total }

func (s *fakeSampler) SampleProcess(pid int32) float64 { return s.usage[pid] }

// hintCall records one ApplyHint invocation.
type hintCall struct {
	pid   int32
	class CoreClass
}

// fakeHinter records hints and can fail selected PIDs.
type fakeHinter struct {
	calls []hintCall
	fail  map[int32]bool
}

func (h *fakeHinter) ApplyHint(pid int32, class CoreClass) error {
	h.calls = append(h.calls, hintCall{pid: pid, class: class})
	if h.fail[pid] {
		return errors.New("hint rejected")
	}
	return nil
}

func balanceConfig() Config {
	return Config{
		Mode:                SelectGlobal,
		TrackForeground:     true,
		Balance:             true,
		PerProcessThreshold: 80,
		TotalLoadThreshold:  150,
	}
}

func TestHeavyProcessPromoted(t *testing.T) {
	sampler := &fakeSampler{total: 160, usage: map[int32]float64{42: 85}}
	hinter := &fakeHinter{}
	state := NewAffinityState()
	c := NewClassifier(balanceConfig(), state, sampler, hinter)

	newAssignment := c.Classify(42, sampler.SampleTotal())

	assert.False(t, newAssignment, "promotion must not signal a new light assignment")
	require.Len(t, hinter.calls, 1)
	assert.Equal(t, hintCall{pid: 42, class: Performance}, hinter.calls[0])
	assert.True(t, state.OnPerformance(42))
	assert.False(t, state.OnEfficiency(42))
}

func TestHeavyProcessCrossesBackToEfficiency(t *testing.T) {
	sampler := &fakeSampler{total: 160, usage: map[int32]float64{42: 85}}
	hinter := &fakeHinter{}
	state := NewAffinityState()
	c := NewClassifier(balanceConfig(), state, sampler, hinter)

	c.Classify(42, 160)
	require.True(t, state.OnPerformance(42))

	// Same PID later sampled at 40 with the load still high.
	sampler.usage[42] = 40
	newAssignment := c.Classify(42, 160)

	assert.True(t, newAssignment)
	assert.True(t, state.OnEfficiency(42))
	assert.False(t, state.OnPerformance(42))
}

func TestLightBelowTotalThreshold(t *testing.T) {
	// High per-process usage alone is not heavy: total load gates it.
	sampler := &fakeSampler{total: 100, usage: map[int32]float64{7: 95}}
	hinter := &fakeHinter{}
	state := NewAffinityState()
	c := NewClassifier(balanceConfig(), state, sampler, hinter)

	newAssignment := c.Classify(7, 100)

	assert.True(t, newAssignment)
	assert.True(t, state.OnEfficiency(7))
}

func TestBalanceDisabledTreatsEverythingLight(t *testing.T) {
	cfg := balanceConfig()
	cfg.Balance = false
	sampler := &fakeSampler{total: 500, usage: map[int32]float64{7: 99}}
	hinter := &fakeHinter{}
	state := NewAffinityState()
	c := NewClassifier(cfg, state, sampler, hinter)

	c.Classify(7, 500)

	require.Len(t, hinter.calls, 1)
	assert.Equal(t, Efficiency, hinter.calls[0].class)
}

func TestClassifyIdempotent(t *testing.T) {
	sampler := &fakeSampler{total: 100, usage: map[int32]float64{1: 10}}
	hinter := &fakeHinter{}
	c := NewClassifier(balanceConfig(), NewAffinityState(), sampler, hinter)

	first := c.Classify(1, 100)
	second := c.Classify(1, 100)

	assert.True(t, first)
	assert.False(t, second, "re-classifying an assigned PID must be a no-op")
	assert.Len(t, hinter.calls, 1, "no additional hint call on the second cycle")
}

func TestClassifyOrderIndependent(t *testing.T) {
	pids := []int32{100, 200, 300}
	permutations := [][]int32{
		{100, 200, 300}, {100, 300, 200}, {200, 100, 300},
		{200, 300, 100}, {300, 100, 200}, {300, 200, 100},
	}

	// 200 is heavy, the others light.
	usage := map[int32]float64{100: 5, 200: 90, 300: 20}

	type classes struct{ eff, perf bool }
	var want map[int32]classes

	for _, perm := range permutations {
		sampler := &fakeSampler{total: 200, usage: usage}
		state := NewAffinityState()
		c := NewClassifier(balanceConfig(), state, sampler, &fakeHinter{})

		for _, pid := range perm {
			c.Classify(pid, 200)
		}

		got := make(map[int32]classes)
		for _, pid := range pids {
			got[pid] = classes{eff: state.OnEfficiency(pid), perf: state.OnPerformance(pid)}
		}
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, "permutation %v diverged", perm)
	}

	assert.True(t, want[200].perf)
	assert.True(t, want[100].eff)
	assert.True(t, want[300].eff)
}

func TestHintFailureLeavesStateUntouched(t *testing.T) {
	sampler := &fakeSampler{total: 100, usage: map[int32]float64{9: 10}}
	h := &fakeHinter{fail: map[int32]bool{9: true}}
	state := NewAffinityState()
	c := NewClassifier(balanceConfig(), state, sampler, h)

	newAssignment := c.Classify(9, 100)

	assert.False(t, newAssignment)
	assert.False(t, state.OnEfficiency(9))
	assert.False(t, state.OnPerformance(9))

	// The PID is re-evaluated next cycle.
	h.fail[9] = false
	assert.True(t, c.Classify(9, 100))
	assert.True(t, state.OnEfficiency(9))
}

func TestPinForegroundUnconditional(t *testing.T) {
	sampler := &fakeSampler{total: 160, usage: map[int32]float64{999: 95}}
	h := &fakeHinter{}
	state := NewAffinityState()
	c := NewClassifier(balanceConfig(), state, sampler, h)

	// 999 is not in any candidate set and would test heavy; the
	// foreground pin ignores both.
	c.PinForeground(999)
	c.PinForeground(999)

	require.Len(t, h.calls, 2, "foreground pin is not deduplicated")
	for _, call := range h.calls {
		assert.Equal(t, hintCall{pid: 999, class: Efficiency}, call)
	}
	assert.True(t, state.OnEfficiency(999))
}

func TestAtMostOneSetInvariant(t *testing.T) {
	sampler := &fakeSampler{total: 200, usage: map[int32]float64{5: 90}}
	h := &fakeHinter{}
	state := NewAffinityState()
	c := NewClassifier(balanceConfig(), state, sampler, h)

	// Bounce the PID between classes a few times.
	for i := range 6 {
		if i%2 == 0 {
			sampler.usage[5] = 90
		} else {
			sampler.usage[5] = 10
		}
		c.Classify(5, 200)

		both := state.OnEfficiency(5) && state.OnPerformance(5)
		assert.False(t, both, "PID 5 in both sets after step %d", i)
	}
}
