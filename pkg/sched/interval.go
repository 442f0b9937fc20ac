package sched

// Scan interval constants, in seconds.
const (
	// InitialInterval is the sleep value the loop starts with.
	InitialInterval = 50

	// decreaseFloor is the value the per-assignment decrease stops at.
	decreaseFloor = 15

	// assignmentDecrement is subtracted per new efficiency assignment.
	assignmentDecrement = 3
)

// DecreaseOnAssignment returns the interval after one new efficiency-class
// assignment. The decrease only applies while the current value is above
// the floor; a cycle with several new assignments compounds, one call per
// assignment.
func DecreaseOnAssignment(current int) int {
	if current > decreaseFloor {
		return current - assignmentDecrement
	}
	return current
}

// NextInterval applies the tiered end-of-cycle adjustment to the current
// interval. The step size grows with the interval so a settled system is
// scanned less and less often; there is no upper bound. Values driven
// below 1 by repeated assignment decreases are reset to 10.
func NextInterval(current int) int {
	switch {
	case current < 1:
		return 10
	case current <= 14:
		return current + 25
	case current <= 90:
		return current + 1
	case current <= 120:
		return current + 1
	case current <= 180:
		return current + 2
	case current <= 200:
		return current + 3
	default:
		return current + 5
	}
}
