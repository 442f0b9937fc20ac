//go:build !darwin && !linux

package sched

import "errors"

// ErrHintsUnsupported is returned on platforms without an affinity-hint
// primitive. The loop keeps running; every hint simply fails per-PID.
var ErrHintsUnsupported = errors.New("affinity hints not supported on this platform")

// UnsupportedHinter is the fallback hinter.
type UnsupportedHinter struct{}

// NewSystemHinter returns the platform hinter.
func NewSystemHinter() UnsupportedHinter {
	return UnsupportedHinter{}
}

// ApplyHint implements Hinter.
func (UnsupportedHinter) ApplyHint(int32, CoreClass) error {
	return ErrHintsUnsupported
}
