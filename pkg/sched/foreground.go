package sched

// ForegroundResolver reports the current frontmost process.
type ForegroundResolver interface {
	// ForegroundPID returns the PID of the frontmost process, or ok
	// false when there is none or the lookup failed (no GUI session,
	// permission denied). A failed lookup never aborts the cycle.
	ForegroundPID() (pid int32, ok bool)
}

// NoForeground is a resolver that never reports a frontmost process. It
// backs disabled foreground tracking and platforms without a resolver.
type NoForeground struct{}

// ForegroundPID implements ForegroundResolver.
func (NoForeground) ForegroundPID() (int32, bool) {
	return 0, false
}
