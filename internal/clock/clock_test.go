package clock

import (
	"testing"
	"time"
)

func TestMockClock_Now(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	result := mock.Now()

	if !result.Equal(mockTime) {
		t.Errorf("MockClock.Now() returned %v, expected exactly %v", result, mockTime)
	}
}

func TestMockClock_Advance(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	first := mock.Now()
	mock.Advance(time.Hour)
	second := mock.Now()

	expected := mockTime.Add(time.Hour)
	if !second.Equal(expected) {
		t.Errorf("After Advance, Now() = %v, expected %v", second, expected)
	}
	if !first.Equal(mockTime) {
		t.Errorf("Before Advance, Now() = %v, expected %v", first, mockTime)
	}
}

func TestMockClock_AdvanceBackwards(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	mock.Advance(-2 * time.Second)

	if got := mock.Now(); !got.Equal(mockTime.Add(-2 * time.Second)) {
		t.Errorf("Advance(-2s) gave %v", got)
	}
}

func TestMockClock_AdvanceDays(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	mock.AdvanceDays(7)

	expected := mockTime.Add(7 * 24 * time.Hour)
	if got := mock.Now(); !got.Equal(expected) {
		t.Errorf("AdvanceDays(7) = %v, expected %v", got, expected)
	}
}

func TestMockClock_Set(t *testing.T) {
	mock := NewMockClock(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	newTime := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	mock.Set(newTime)

	result := mock.Now()
	if !result.Equal(newTime) {
		t.Errorf("After Set, Now() = %v, expected %v", result, newTime)
	}
}

func TestMockClock_SinceUntil(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	if got := mock.Since(mockTime.Add(-time.Hour)); got != time.Hour {
		t.Errorf("Since() = %v, expected 1h", got)
	}
	if got := mock.Until(mockTime.Add(time.Hour)); got != time.Hour {
		t.Errorf("Until() = %v, expected 1h", got)
	}
}

func TestFunc(t *testing.T) {
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := Func(func() time.Time { return fixed })

	if !c.Now().Equal(fixed) {
		t.Errorf("Func.Now() = %v, expected %v", c.Now(), fixed)
	}
	if got := c.Until(fixed.Add(time.Minute)); got != time.Minute {
		t.Errorf("Func.Until() = %v, expected 1m", got)
	}
	if got := c.Since(fixed.Add(-time.Minute)); got != time.Minute {
		t.Errorf("Func.Since() = %v, expected 1m", got)
	}
}

func TestClockInterface(t *testing.T) {
	var _ Clock = &RealClock{}
	var _ Clock = &MockClock{}
	var _ Clock = Func(time.Now)
}

func TestRealClock_Now(t *testing.T) {
	c := &RealClock{}

	before := time.Now()
	result := c.Now()
	after := time.Now()

	if result.Before(before) || result.After(after) {
		t.Errorf("RealClock.Now() = %v, expected between %v and %v", result, before, after)
	}
}

func TestRealClock_Until(t *testing.T) {
	c := &RealClock{}

	future := time.Now().Add(time.Hour)
	result := c.Until(future)

	if result < time.Hour-time.Second || result > time.Hour+time.Second {
		t.Errorf("RealClock.Until() = %v, expected approximately 1 hour", result)
	}
}
