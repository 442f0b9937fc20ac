package sched

// Topology describes the machine's core layout. It is informational: the
// classifier never consumes it, but the daemon logs it at startup so an
// operator can see whether the machine is heterogeneous at all.
type Topology struct {
	// LogicalCores is the total logical core count.
	LogicalCores int

	// EfficiencyCores is the number of efficiency cores, 0 if unknown.
	EfficiencyCores int

	// PerformanceCores is the number of performance cores, 0 if unknown.
	PerformanceCores int
}

// Heterogeneous reports whether both core classes were detected.
func (t Topology) Heterogeneous() bool {
	return t.EfficiencyCores > 0 && t.PerformanceCores > 0
}
