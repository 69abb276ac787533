// Package trial models a time-bounded application trial: when it was
// installed, how long it runs, whether it has expired and how much of it is
// left.
package trial

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultTrialPeriodDays is the length of a freshly started trial.
const DefaultTrialPeriodDays = 7

// State is the persisted trial record. It is immutable: every change
// produces a new State with the expiration date derived again.
type State struct {
	installDate     time.Time
	trialPeriodDays int
	expirationDate  time.Time
}

// NewState builds a State whose expiration is installDate plus days calendar
// days. Any period is accepted; zero or negative means already expired.
func NewState(installDate time.Time, days int) State {
	return State{
		installDate:     installDate,
		trialPeriodDays: days,
		expirationDate:  addDays(installDate, days),
	}
}

// DefaultState starts a DefaultTrialPeriodDays trial at now.
func DefaultState(now time.Time) State {
	return NewState(now, DefaultTrialPeriodDays)
}

// addDays adds calendar days on the local calendar, so a trial installed at
// 10:00 expires at 10:00 local time even across a DST change. The result keeps
// t's location; only the arithmetic happens in time.Local. Timestamps decoded
// from disk carry a fixed offset instead of the original zone, and this keeps
// the derived date identical before and after a round trip.
func addDays(t time.Time, days int) time.Time {
	return t.In(time.Local).AddDate(0, 0, days).In(t.Location())
}

// InstallDate returns when the trial started.
func (s State) InstallDate() time.Time { return s.installDate }

// TrialPeriodDays returns the total trial length in days, extensions included.
func (s State) TrialPeriodDays() int { return s.trialPeriodDays }

// ExpirationDate returns the last instant the trial is still valid.
func (s State) ExpirationDate() time.Time { return s.expirationDate }

// Extended returns a copy of s with delta days added to the trial period.
func (s State) Extended(delta int) State {
	return NewState(s.installDate, s.trialPeriodDays+delta)
}

// WithTrialPeriodDays returns a copy of s with the period replaced.
func (s State) WithTrialPeriodDays(days int) State {
	return NewState(s.installDate, days)
}

// IsExpiredAt reports whether now is strictly past the expiration date.
// The expiration instant itself still belongs to the trial.
func (s State) IsExpiredAt(now time.Time) bool {
	return now.After(s.expirationDate)
}

// Equal compares instants rather than time.Time representations, so a
// State read back from disk equals the one that was written.
func (s State) Equal(o State) bool {
	return s.trialPeriodDays == o.trialPeriodDays &&
		s.installDate.Equal(o.installDate) &&
		s.expirationDate.Equal(o.expirationDate)
}

// String implements fmt.Stringer for log output.
func (s State) String() string {
	return fmt.Sprintf("installed=%s days=%d expires=%s",
		s.installDate.Format(time.RFC3339), s.trialPeriodDays, s.expirationDate.Format(time.RFC3339))
}

// stateJSON is the on-disk layout. Pointers let decoding tell a missing
// field from a zero value.
type stateJSON struct {
	DateInstalled     *time.Time `json:"dateInstalled"`
	DateExpired       *time.Time `json:"dateExpired"`
	TrialPeriodInDays *int       `json:"trialPeriodInDays"`
}

// ErrMissingField is returned when a settings document lacks a required field.
var ErrMissingField = errors.New("missing required field")

// MarshalJSON writes all three fields, dateExpired included.
func (s State) MarshalJSON() ([]byte, error) {
	days := s.trialPeriodDays
	return json.Marshal(stateJSON{
		DateInstalled:     &s.installDate,
		DateExpired:       &s.expirationDate,
		TrialPeriodInDays: &days,
	})
}

// UnmarshalJSON requires all three fields. dateExpired is checked for
// presence but recomputed, so a hand-edited file cannot desync the expiration.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.DateInstalled == nil:
		return fmt.Errorf("%w: dateInstalled", ErrMissingField)
	case raw.DateExpired == nil:
		return fmt.Errorf("%w: dateExpired", ErrMissingField)
	case raw.TrialPeriodInDays == nil:
		return fmt.Errorf("%w: trialPeriodInDays", ErrMissingField)
	}

	*s = NewState(*raw.DateInstalled, *raw.TrialPeriodInDays)
	return nil
}
