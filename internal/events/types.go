// Package events provides a small pub/sub bus for trial state changes.
// The trial controller publishes here; the change history and any live
// views subscribe.
package events

import "time"

// EventType identifies the category of event.
type EventType string

// Event types published by the trial controller.
const (
	// First run: a default trial was created and written.
	EventTrialCreated EventType = "trial.created"

	// Existing settings were read at startup.
	EventTrialLoaded EventType = "trial.loaded"

	// Unreadable settings were replaced by a default trial.
	EventTrialRecovered EventType = "trial.recovered"

	EventTrialExtended EventType = "trial.extended"
	EventTrialReset    EventType = "trial.reset"
	EventTrialExpired  EventType = "trial.expired"

	// A reload picked up a state different from the one in memory.
	EventTrialReloaded EventType = "trial.reloaded"

	EventSaveFailed EventType = "settings.save_failed"
)

// Event is the core message passed through the event bus.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // Component that emitted: "trial", "cli", ...
	Data      any       `json:"data"`   // Type-specific payload
}

// TrialData is the payload of every trial.* event: the state after the
// change, plus the day delta for extensions.
type TrialData struct {
	InstallDate     time.Time `json:"install_date"`
	ExpirationDate  time.Time `json:"expiration_date"`
	TrialPeriodDays int       `json:"trial_period_days"`
	Delta           int       `json:"delta,omitempty"`
}

// SaveFailedData is the payload of EventSaveFailed.
type SaveFailedData struct {
	Error string `json:"error"`
}
