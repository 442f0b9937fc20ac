package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/studentiz/Yawning/pkg/daemon"
)

// RenderStatus renders the daemon status block for the status command.
// status may be nil when the daemon is running but left no status file.
func RenderStatus(running bool, status *daemon.StatusFile) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("yawning scheduler"))
	b.WriteString("\n")

	if !running {
		b.WriteString(field("State", StoppedStyle.Render("stopped")))
		return StatusBox.Render(b.String())
	}

	b.WriteString(field("State", RunningStyle.Render("running")))

	if status != nil {
		b.WriteString(field("PID", fmt.Sprint(status.PID)))
		if !status.StartedAt.IsZero() {
			b.WriteString(field("Started", humanize.RelTime(status.StartedAt, time.Now(), "ago", "from now")))
		}
		if status.Config != "" {
			b.WriteString(field("Config", status.Config))
		}
		if status.RunID != "" {
			b.WriteString(field("Run ID", status.RunID))
		}
	}

	return StatusBox.Render(strings.TrimRight(b.String(), "\n"))
}

func field(label, value string) string {
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value) + "\n"
}
