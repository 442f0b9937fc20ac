package config

// Default scheduler settings, applied when neither the config file nor
// the command line overrides them.
const (
	// DefaultTrackForeground pins the frontmost process to efficiency
	// cores every cycle.
	DefaultTrackForeground = true

	// DefaultBalance enables the heavy/light classification test.
	DefaultBalance = true

	// DefaultPerProcessThreshold is the per-process CPU percentage a
	// process must exceed to be considered heavy.
	DefaultPerProcessThreshold = 80.0

	// DefaultTotalLoadThreshold is the aggregate CPU percentage the
	// system must exceed before any process is promoted.
	DefaultTotalLoadThreshold = 150.0
)
