package ui

import (
	"fmt"

	"github.com/alfredjeanlab/labelq/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
)

// statusColors is the single lookup table for status display colors.
var statusColors = map[model.RecordStatus]int{
	model.StatusPending:   245, // gray
	model.StatusDraft:     74,  // blue
	model.StatusSubmitted: 71,  // green
	model.StatusDiscarded: 167, // red
}

var noColor bool

// RenderStatus returns the status name in its display color.
func RenderStatus(s model.RecordStatus) string {
	color, ok := statusColors[s]
	if noColor || !ok {
		return s.String()
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
