package sched

import "testing"

func TestMarkMovesBetweenSets(t *testing.T) {
	s := NewAffinityState()

	s.MarkEfficiency(10)
	if !s.OnEfficiency(10) || s.OnPerformance(10) {
		t.Fatal("expected PID 10 on efficiency only")
	}

	s.MarkPerformance(10)
	if s.OnEfficiency(10) || !s.OnPerformance(10) {
		t.Fatal("expected PID 10 on performance only")
	}

	s.MarkEfficiency(10)
	if !s.OnEfficiency(10) || s.OnPerformance(10) {
		t.Fatal("expected PID 10 back on efficiency only")
	}
}

func TestMarkIsIdempotent(t *testing.T) {
	s := NewAffinityState()

	s.MarkEfficiency(1)
	s.MarkEfficiency(1)
	s.MarkPerformance(2)
	s.MarkPerformance(2)

	eff, perf := s.Counts()
	if eff != 1 || perf != 1 {
		t.Fatalf("Counts() = (%d, %d), want (1, 1)", eff, perf)
	}
}

func TestUnknownPIDInNeitherSet(t *testing.T) {
	s := NewAffinityState()

	if s.OnEfficiency(99) || s.OnPerformance(99) {
		t.Fatal("unseen PID must be in neither set")
	}
}

func TestCounts(t *testing.T) {
	s := NewAffinityState()
	for pid := int32(1); pid <= 5; pid++ {
		s.MarkEfficiency(pid)
	}
	s.MarkPerformance(4)
	s.MarkPerformance(5)

	eff, perf := s.Counts()
	if eff != 3 || perf != 2 {
		t.Fatalf("Counts() = (%d, %d), want (3, 2)", eff, perf)
	}
}
