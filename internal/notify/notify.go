// Package notify delivers desktop notifications and audio cues. Delivery is
// best effort: a missing notifier binary degrades to a log line, never an
// error surfaced to the caller.
package notify

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"time"
)

// Cue selects the audio accent of a notification.
type Cue int

const (
	CueNone Cue = iota
	CueChime
	CueAlarm
)

// Notifier delivers a notification with an optional audio cue.
type Notifier interface {
	Notify(title, body string, cue Cue)
}

// System sends notifications through the platform notifier: notify-send on
// Linux, osascript on macOS.
type System struct{}

var _ Notifier = System{}

func (System) Notify(title, body string, cue Cue) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		if cue != CueNone {
			script += ` sound name "Glass"`
		}
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	default:
		urgency := "normal"
		if cue == CueAlarm {
			urgency = "critical"
		}
		cmd = exec.CommandContext(ctx, "notify-send", "-u", urgency, "-a", "opsdeck", title, body)
	}
	if err := cmd.Run(); err != nil {
		log.Printf("notify: %s: %v", title, err)
	}
}

// Nop discards notifications. Used in tests and headless runs.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) Notify(string, string, Cue) {}
