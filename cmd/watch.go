package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"grimm.is/apptrial/internal/brand"
	"grimm.is/apptrial/internal/tui"
)

// watchSource adapts Env to tui.Source. Every refresh re-reads the settings
// file so edits by another process show up; a failed read keeps the last
// state.
type watchSource struct {
	env *Env
}

func (s watchSource) Refresh() (tui.Status, error) {
	err := s.env.Trial.ReloadFromDisk()
	return s.env.Status(), err
}

// NewWatchModel returns the live countdown model for env.
func NewWatchModel(env *Env, interval time.Duration) tui.WatchModel {
	return tui.NewWatchModel(brand.Name, watchSource{env: env}, env.Clock, interval)
}

// RunWatch runs the live countdown until the user quits.
func RunWatch(env *Env, interval time.Duration) error {
	p := tea.NewProgram(NewWatchModel(env, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
