package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"grimm.is/apptrial/internal/clock"
)

// Source produces a fresh Status. It is polled on every tick.
type Source interface {
	Refresh() (Status, error)
}

type tickMsg time.Time

// WatchModel is a live countdown of a trial, re-reading its source on a
// fixed interval.
type WatchModel struct {
	Title    string
	Source   Source
	Clock    clock.Clock
	Interval time.Duration

	status   Status
	err      error
	loaded   bool
	bar      progress.Model
	quitting bool
}

// NewWatchModel creates a watch model polling src every interval.
func NewWatchModel(title string, src Source, clk clock.Clock, interval time.Duration) WatchModel {
	if clk == nil {
		clk = clock.System
	}
	if interval <= 0 {
		interval = time.Second
	}
	return WatchModel{
		Title:    title,
		Source:   src,
		Clock:    clk,
		Interval: interval,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init fires the first refresh immediately.
func (m WatchModel) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(m.Clock.Now()) }
}

func (m WatchModel) refresh() WatchModel {
	status, err := m.Source.Refresh()
	m.err = err
	if err == nil || !m.loaded {
		m.status = status
		m.loaded = true
	}
	return m
}

// Update handles messages
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m.refresh(), nil
		}

	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w

	case tickMsg:
		return m.refresh(), m.tick()
	}

	return m, nil
}

// Status returns the last status shown.
func (m WatchModel) Status() Status { return m.status }

// Err returns the error from the most recent refresh, if any.
func (m WatchModel) Err() error { return m.err }

// View renders the countdown.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return StyleApp.Render(StyleSubtitle.Render("Loading..."))
	}

	s := RenderStatus(m.Title, m.status) + "\n\n"
	s += m.bar.ViewAs(Elapsed(m.Clock.Now(), m.status.Installed, m.status.Expires)) + "\n"
	if m.err != nil {
		s += "\n" + StyleStatusWarn.Render("reload failed, showing last known state: "+m.err.Error()) + "\n"
	}
	s += "\n" + StyleHelp.Render("r refresh • q quit")

	return StyleApp.Render(s)
}
