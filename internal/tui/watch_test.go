package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/apptrial/internal/testutil"
)

type fakeSource struct {
	statuses []Status
	errs     []error
	calls    int
}

func (f *fakeSource) Refresh() (Status, error) {
	i := f.calls
	f.calls++
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.statuses[i], err
}

func sampleStatus(days int) Status {
	return Status{
		Installed: testutil.T0,
		Expires:   testutil.T0.AddDate(0, 0, days),
		TotalDays: days,
		Left:      time.Duration(days) * 24 * time.Hour,
		Remaining: "about 7 days",
	}
}

func TestWatchModel_TickRefreshes(t *testing.T) {
	src := &fakeSource{statuses: []Status{sampleStatus(7), sampleStatus(14)}}
	m := NewWatchModel("AppTrial", src, testutil.NewClock(), time.Second)

	init := m.Init()
	require.NotNil(t, init)
	_, isTick := init().(tickMsg)
	assert.True(t, isTick)

	next, cmd := m.Update(tickMsg(testutil.T0))
	require.NotNil(t, cmd, "tick schedules the next tick")
	m = next.(WatchModel)
	assert.Equal(t, 7, m.Status().TotalDays)

	next, _ = m.Update(tickMsg(testutil.T0))
	m = next.(WatchModel)
	assert.Equal(t, 14, m.Status().TotalDays)
	assert.Equal(t, 2, src.calls)
}

func TestWatchModel_KeepsLastStatusOnError(t *testing.T) {
	boom := errors.New("settings file is gone")
	src := &fakeSource{
		statuses: []Status{sampleStatus(7), {}},
		errs:     []error{nil, boom},
	}
	m := NewWatchModel("AppTrial", src, testutil.NewClock(), time.Second)

	next, _ := m.Update(tickMsg(testutil.T0))
	next, _ = next.Update(tickMsg(testutil.T0))
	m = next.(WatchModel)

	assert.Equal(t, 7, m.Status().TotalDays)
	assert.ErrorIs(t, m.Err(), boom)
	assert.Contains(t, m.View(), "reload failed")
}

func TestWatchModel_Keys(t *testing.T) {
	src := &fakeSource{statuses: []Status{sampleStatus(7)}}
	m := NewWatchModel("AppTrial", src, testutil.NewClock(), 0)
	assert.Equal(t, time.Second, m.Interval)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, src.calls)

	next, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestWatchModel_View(t *testing.T) {
	clk := testutil.NewClock()
	src := &fakeSource{statuses: []Status{sampleStatus(7)}}
	m := NewWatchModel("AppTrial", src, clk, time.Second)

	assert.Contains(t, m.View(), "Loading")

	next, _ := m.Update(tickMsg(clk.Now()))
	view := next.View()
	assert.Contains(t, view, "AppTrial")
	assert.Contains(t, view, "about 7 days")
	assert.Contains(t, view, "q quit")
}

func TestWatchModel_WindowSize(t *testing.T) {
	m := NewWatchModel("AppTrial", &fakeSource{statuses: []Status{{}}}, nil, time.Second)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, 60, next.(WatchModel).bar.Width)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 12, Height: 40})
	assert.Equal(t, 10, next.(WatchModel).bar.Width)
}
