// Package testutil holds fixtures shared by the trial and settings tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"grimm.is/apptrial/internal/clock"
)

// T0 is the fixed "now" most tests start from. Mid June keeps the following
// weeks clear of DST changes in every common zone, so calendar days are 24h
// whatever TZ the tests run under.
var T0 = time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

// NewClock returns a MockClock set to T0.
func NewClock() *clock.MockClock {
	return clock.NewMockClock(T0)
}

// SettingsDir returns a settings directory below a fresh scratch directory.
// The directory itself (and its parent) do not exist yet.
func SettingsDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "Application Support", "settings")
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// RequireNotRoot skips tests that rely on permission errors, which root
// bypasses.
func RequireNotRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("Skipping test: permission checks do not apply to root")
	}
}
