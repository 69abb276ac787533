// Package clock provides a mockable time source for the trial controller.
// In production it wraps time.Now(). Tests use MockClock to travel through a
// trial period without waiting for it.
package clock

import (
	"sync"
	"time"
)

// Day is a fixed 24 hour step. Trial expiration itself uses calendar-day
// arithmetic; Day is only for moving a MockClock around.
const Day = 24 * time.Hour

// Clock is the interface for time operations.
// Inject a Clock wherever "now" matters so it can be replaced in tests.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Until(t time.Time) time.Duration
}

// --- Real Clock (simple wrapper) ---

// RealClock provides the actual system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Until returns the duration until t.
func (c *RealClock) Until(t time.Time) time.Duration {
	return time.Until(t)
}

// System is the shared production clock.
var System Clock = &RealClock{}

// --- Mock Clock (for testing) ---

// MockClock is a test clock with controllable time.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a mock clock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock time.
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the duration since t.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Until returns the duration until t.
func (c *MockClock) Until(t time.Time) time.Duration {
	return t.Sub(c.Now())
}

// Set sets the mock time.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the mock time by d. Negative durations travel backwards.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// AdvanceDays moves the mock time by n fixed 24 hour days.
func (c *MockClock) AdvanceDays(n int) {
	c.Advance(time.Duration(n) * Day)
}

// --- Function adapter ---

// Func adapts a plain time source such as time.Now into a Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }

// Since returns the duration since t according to f.
func (f Func) Since(t time.Time) time.Duration { return f().Sub(t) }

// Until returns the duration until t according to f.
func (f Func) Until(t time.Time) time.Duration { return t.Sub(f()) }
