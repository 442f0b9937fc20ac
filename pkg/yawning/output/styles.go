// Package output renders CLI output for the yawning control commands.
package output

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette.
const (
	// ColorPrimary is used for headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for the running indicator (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorDanger is used for errors and the stopped indicator (red).
	ColorDanger = lipgloss.Color("196")

	// ColorMuted is used for labels and secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

var (
	// StatusBox frames the status block.
	StatusBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// TitleStyle is used for the status heading.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for field labels (e.g. "Mode:", "PID:").
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// RunningStyle marks a live instance.
	RunningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StoppedStyle marks the absence of a live instance.
	StoppedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)
)
