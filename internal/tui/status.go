package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Status is a point-in-time view of a trial, ready for display.
type Status struct {
	Installed time.Time
	Expires   time.Time
	TotalDays int
	Left      time.Duration
	Remaining string // localized phrase
	Expired   bool
	Path      string
}

// Badge returns the one-word state shown next to the title.
func (s Status) Badge() string {
	switch {
	case s.Expired:
		return StyleStatusBad.Render("EXPIRED")
	case s.Left < 24*time.Hour:
		return StyleStatusWarn.Render("LAST DAY")
	default:
		return StyleStatusGood.Render("ACTIVE")
	}
}

// RenderStatus draws s as a bordered card.
func RenderStatus(title string, s Status) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			StyleLabel.Render(label),
			StyleValue.Render(value))
	}

	lines := []string{
		StyleTitle.Render(title) + "  " + s.Badge(),
		"",
		row("Installed", s.Installed.Format(time.RFC1123)),
		row("Expires", s.Expires.Format(time.RFC1123)),
		row("Period", fmt.Sprintf("%d days", s.TotalDays)),
		row("Remaining", s.Remaining),
	}
	if s.Path != "" {
		lines = append(lines, "", StyleSubtitle.Render(s.Path))
	}

	return StyleCard.Render(strings.Join(lines, "\n"))
}

// Elapsed returns the fraction of the trial already used at now, clamped to
// [0, 1]. A trial whose expiration is not after its install date counts as
// fully used.
func Elapsed(now, installed, expires time.Time) float64 {
	span := expires.Sub(installed)
	if span <= 0 {
		return 1
	}
	f := float64(now.Sub(installed)) / float64(span)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
