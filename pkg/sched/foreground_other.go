//go:build !darwin

package sched

// SystemForeground is a stub on platforms without a frontmost-process
// query. It always reports none, which disables the foreground override
// without aborting the loop.
type SystemForeground = NoForeground

// NewSystemForeground returns the platform foreground resolver.
func NewSystemForeground() SystemForeground {
	return SystemForeground{}
}
