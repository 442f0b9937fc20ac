//go:build !darwin

package sched

import "runtime"

// DetectTopology reports the logical core count. The efficiency and
// performance breakdown is not detected on this platform.
func DetectTopology() Topology {
	return Topology{LogicalCores: runtime.NumCPU()}
}
