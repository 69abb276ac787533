package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/apptrial/internal/events"
	"grimm.is/apptrial/internal/testutil"
)

func newTestStore(t *testing.T, retention int) *Store {
	t.Helper()
	s, err := NewStore(":memory:", retention)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_WriteAndQuery(t *testing.T) {
	s := newTestStore(t, 0)
	t0 := testutil.T0

	require.NoError(t, s.Write(Record{
		Timestamp:       t0,
		Action:          string(events.EventTrialCreated),
		Source:          "trial",
		InstallDate:     t0,
		ExpirationDate:  t0.AddDate(0, 0, 7),
		TrialPeriodDays: 7,
	}))
	require.NoError(t, s.Write(Record{
		Timestamp:       t0.Add(time.Hour),
		Action:          string(events.EventTrialExtended),
		Source:          "trial",
		InstallDate:     t0,
		ExpirationDate:  t0.AddDate(0, 0, 14),
		TrialPeriodDays: 14,
		Delta:           7,
	}))

	records, err := s.Query(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	newest := records[0]
	assert.Equal(t, string(events.EventTrialExtended), newest.Action)
	assert.True(t, newest.Timestamp.Equal(t0.Add(time.Hour)))
	assert.True(t, newest.ExpirationDate.Equal(t0.AddDate(0, 0, 14)))
	assert.Equal(t, 14, newest.TrialPeriodDays)
	assert.Equal(t, 7, newest.Delta)
	assert.NotZero(t, newest.ID)

	limited, err := s.Query(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func TestStore_EmptyDates(t *testing.T) {
	s := newTestStore(t, 0)
	require.NoError(t, s.Write(Record{
		Timestamp: testutil.T0,
		Action:    string(events.EventSaveFailed),
		Detail:    "disk full",
	}))

	records, err := s.Query(0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].InstallDate.IsZero())
	assert.Equal(t, "disk full", records[0].Detail)
}

func TestStore_Prune(t *testing.T) {
	s := newTestStore(t, 30)
	now := testutil.T0

	for _, age := range []int{40, 31, 29, 1} {
		require.NoError(t, s.Write(Record{
			Timestamp: now.AddDate(0, 0, -age),
			Action:    string(events.EventTrialExtended),
		}))
	}

	n, err := s.Prune(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStore_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := NewStore(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Write(Record{Timestamp: testutil.T0, Action: "trial.reset"}))
	require.NoError(t, s.Close())

	s, err = NewStore(path, 0)
	require.NoError(t, err)
	defer s.Close()

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecorder(t *testing.T) {
	s := newTestStore(t, 0)
	hub := events.NewHub()
	rec := NewRecorder(s, hub, nil)

	data := events.TrialData{
		InstallDate:     testutil.T0,
		ExpirationDate:  testutil.T0.AddDate(0, 0, 10),
		TrialPeriodDays: 10,
		Delta:           3,
	}
	hub.Publish(events.Event{Type: events.EventTrialLoaded, Timestamp: testutil.T0, Source: "trial", Data: data})
	hub.Publish(events.Event{Type: events.EventTrialExtended, Timestamp: testutil.T0, Source: "trial", Data: data})
	hub.Publish(events.Event{
		Type:      events.EventSaveFailed,
		Timestamp: testutil.T0.Add(time.Second),
		Source:    "trial",
		Data:      events.SaveFailedData{Error: "disk full"},
	})
	rec.Close()

	records, err := s.Query(0)
	require.NoError(t, err)
	require.Len(t, records, 2, "loads are not recorded")

	assert.Equal(t, string(events.EventSaveFailed), records[0].Action)
	assert.Equal(t, "disk full", records[0].Detail)

	assert.Equal(t, string(events.EventTrialExtended), records[1].Action)
	assert.Equal(t, 3, records[1].Delta)
	assert.Equal(t, 10, records[1].TrialPeriodDays)

	// Closed recorder no longer listens.
	hub.Publish(events.Event{Type: events.EventTrialReset, Timestamp: testutil.T0})
	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRecorder_Flush(t *testing.T) {
	s := newTestStore(t, 0)
	hub := events.NewHub()
	rec := NewRecorder(s, hub, nil)
	defer rec.Close()

	hub.Publish(events.Event{Type: events.EventTrialReset, Timestamp: testutil.T0, Source: "trial"})
	rec.Flush()

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	hub.Publish(events.Event{Type: events.EventTrialExpired, Timestamp: testutil.T0, Source: "trial"})
	rec.Flush()

	count, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRecordFromEvent(t *testing.T) {
	rec := RecordFromEvent(events.Event{
		Type:      events.EventTrialExtended,
		Timestamp: testutil.T0,
		Source:    "trial",
		Data:      events.TrialData{TrialPeriodDays: 9, Delta: 2},
	})
	assert.Equal(t, "trial.extended", rec.Action)
	assert.Equal(t, 9, rec.TrialPeriodDays)
	assert.Equal(t, 2, rec.Delta)

	rec = RecordFromEvent(events.Event{Type: events.EventTrialReset})
	assert.Zero(t, rec.TrialPeriodDays)
}
