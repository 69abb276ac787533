package trial

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/text/language"

	"grimm.is/apptrial/internal/clock"
	"grimm.is/apptrial/internal/events"
	"grimm.is/apptrial/internal/logging"
)

// Store persists exactly one State.
type Store interface {
	// Load returns the stored State, or a default State when nothing has
	// been stored yet.
	Load() (State, error)
	// Read returns the stored State and fails when nothing has been stored.
	Read() (State, error)
	// Save replaces the stored State.
	Save(State) error
}

// Observer is told about every load and save the controller performs.
type Observer interface {
	ObserveLoad(err error)
	ObserveSave(err error)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(error) {}
func (nopObserver) ObserveSave(error) {}

// Controller owns the live trial State for one installation and is the only
// writer of its Store. Every mutation is persisted before it returns.
type Controller struct {
	mu sync.Mutex

	store       Store
	clock       clock.Clock
	formatter   *Formatter
	logger      *logging.Logger
	observer    Observer
	hub         *events.Hub
	defaultDays int

	state   State
	initErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used to report recovered failures.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l.WithComponent("trial")
		}
	}
}

// WithLanguage renders DaysRemainingText in lang.
func WithLanguage(lang language.Tag) Option {
	return func(c *Controller) { c.formatter = NewFormatter(lang) }
}

// WithObserver reports loads and saves to o.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithEvents publishes every state change on hub.
func WithEvents(hub *events.Hub) Option {
	return func(c *Controller) { c.hub = hub }
}

// WithDefaultPeriod sets the period used by ResetTrialPeriod and when a
// corrupt settings file is replaced.
func WithDefaultPeriod(days int) Option {
	return func(c *Controller) { c.defaultDays = days }
}

// New loads the trial from store and writes it straight back, so the first
// run always leaves a settings file behind.
//
// Load failures never abort construction: a corrupt or unreadable file is
// replaced by a fresh default trial and the failure is kept for InitError.
func New(store Store, clk clock.Clock, opts ...Option) *Controller {
	c := &Controller{
		store:       store,
		clock:       clk,
		formatter:   DefaultFormatter(),
		logger:      logging.Discard(),
		observer:    nopObserver{},
		defaultDays: DefaultTrialPeriodDays,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = clock.System
	}

	c.initialize()
	return c
}

func (c *Controller) initialize() {
	existed := true
	if ex, ok := c.store.(interface{ Exists() bool }); ok {
		existed = ex.Exists()
	}

	state, err := c.store.Load()
	c.observer.ObserveLoad(err)

	event := events.EventTrialLoaded
	switch {
	case err != nil:
		c.logger.Warn("failed to load trial settings, starting a new trial", "error", err)
		state = c.defaultState()
		c.initErr = err
		event = events.EventTrialRecovered
	case !existed:
		event = events.EventTrialCreated
	}
	c.state = state
	c.publish(event, 0)

	if err := c.persist(); err != nil {
		c.initErr = errors.Join(c.initErr, err)
	}
}

func (c *Controller) defaultState() State {
	return NewState(c.clock.Now(), c.defaultDays)
}

// persist saves the current state. Caller must hold c.mu or be in New.
func (c *Controller) persist() error {
	err := c.store.Save(c.state)
	c.observer.ObserveSave(err)
	if err != nil {
		c.logger.Error("failed to save trial settings", "error", err, "state", c.state.String())
		c.hub.Publish(events.Event{
			Type:      events.EventSaveFailed,
			Timestamp: c.clock.Now(),
			Source:    "trial",
			Data:      events.SaveFailedData{Error: err.Error()},
		})
	}
	return err
}

// publish announces the current state. Caller must hold c.mu or be in New.
func (c *Controller) publish(t events.EventType, delta int) {
	c.hub.Publish(events.Event{
		Type:      t,
		Timestamp: c.clock.Now(),
		Source:    "trial",
		Data: events.TrialData{
			InstallDate:     c.state.InstallDate(),
			ExpirationDate:  c.state.ExpirationDate(),
			TrialPeriodDays: c.state.TrialPeriodDays(),
			Delta:           delta,
		},
	})
}

// InitError returns the load or save failure New recovered from, if any.
func (c *Controller) InitError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErr
}

// State returns the current trial state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsExpired reports whether the clock is strictly past the expiration date.
func (c *Controller) IsExpired() bool {
	return c.State().IsExpiredAt(c.clock.Now())
}

// DateExpired returns the expiration date.
func (c *Controller) DateExpired() time.Time {
	return c.State().ExpirationDate()
}

// DateInstalled returns the install date.
func (c *Controller) DateInstalled() time.Time {
	return c.State().InstallDate()
}

// TotalDays returns the trial period including extensions.
func (c *Controller) TotalDays() int {
	return c.State().TrialPeriodDays()
}

// Remaining returns the time left before expiration, or zero once expired.
func (c *Controller) Remaining() time.Duration {
	d := c.clock.Until(c.DateExpired())
	if d < 0 {
		return 0
	}
	return d
}

// DaysRemainingText returns an approximate phrase such as "about 6 days, 12
// hours", or "0 days" once expired.
func (c *Controller) DaysRemainingText() string {
	return c.formatter.Format(c.clock.Now(), c.DateExpired())
}

// ExtendTrial adds days to the trial period and persists it. The core
// enforces no upper bound. On a save failure the extension still applies in
// memory and the error is returned.
func (c *Controller) ExtendTrial(days int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.state.Extended(days)
	c.logger.Info("trial extended", "days", days, "total", c.state.TrialPeriodDays())
	c.publish(events.EventTrialExtended, days)
	return c.persist()
}

// ResetTrialPeriod starts a brand new default trial at the current time,
// discarding any extensions.
func (c *Controller) ResetTrialPeriod() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.defaultState()
	c.logger.Info("trial reset", "expires", c.state.ExpirationDate())
	c.publish(events.EventTrialReset, 0)
	return c.persist()
}

// ExpireTrial sets the period to -1 day, which puts the expiration date
// before the install date.
func (c *Controller) ExpireTrial() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.state.WithTrialPeriodDays(-1)
	c.logger.Info("trial expired administratively")
	c.publish(events.EventTrialExpired, 0)
	return c.persist()
}

// ReloadFromDisk replaces the current state with the stored one. If the file
// is missing, unreadable or corrupt the current state is kept untouched; the
// error is returned for information only.
func (c *Controller) ReloadFromDisk() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.store.Read()
	c.observer.ObserveLoad(err)
	if err != nil {
		c.logger.Debug("reload failed, keeping current trial state", "error", err)
		return err
	}
	if !state.Equal(c.state) {
		c.state = state
		c.publish(events.EventTrialReloaded, 0)
	}
	return nil
}
