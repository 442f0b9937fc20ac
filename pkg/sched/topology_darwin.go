//go:build darwin

package sched

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// DetectTopology reads the performance-level sysctls Apple silicon
// exposes: perflevel0 counts performance cores, perflevel1 efficiency
// cores. On machines without heterogeneous cores the sysctls are absent
// and only the logical count is reported.
func DetectTopology() Topology {
	topo := Topology{LogicalCores: runtime.NumCPU()}

	if n, err := unix.SysctlUint32("hw.perflevel0.logicalcpu"); err == nil {
		topo.PerformanceCores = int(n)
	}
	if n, err := unix.SysctlUint32("hw.perflevel1.logicalcpu"); err == nil {
		topo.EfficiencyCores = int(n)
	}
	return topo
}
