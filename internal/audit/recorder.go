package audit

import (
	"grimm.is/apptrial/internal/events"
	"grimm.is/apptrial/internal/logging"
)

// Recorded lists the event types written to the history. Plain loads are
// left out so that read-only commands do not grow the database.
var Recorded = []events.EventType{
	events.EventTrialCreated,
	events.EventTrialRecovered,
	events.EventTrialExtended,
	events.EventTrialReset,
	events.EventTrialExpired,
	events.EventTrialReloaded,
	events.EventSaveFailed,
}

// Recorder copies trial events from a hub into a Store.
type Recorder struct {
	store  *Store
	hub    *events.Hub
	ch     <-chan events.Event
	logger *logging.Logger

	flush chan chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewRecorder subscribes to hub and starts writing events to store.
// Call Close to flush and stop.
func NewRecorder(store *Store, hub *events.Hub, logger *logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.Discard()
	}
	r := &Recorder{
		store:  store,
		hub:    hub,
		ch:     hub.Subscribe(256, Recorded...),
		logger: logger.WithComponent("history"),
		flush:  make(chan chan struct{}),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for {
		select {
		case e := <-r.ch:
			r.record(e)
		case ack := <-r.flush:
			r.drain()
			close(ack)
		case <-r.stop:
			r.drain()
			return
		}
	}
}

// drain writes whatever is buffered without waiting for more.
func (r *Recorder) drain() {
	for {
		select {
		case e := <-r.ch:
			r.record(e)
		default:
			return
		}
	}
}

func (r *Recorder) record(e events.Event) {
	if err := r.store.Write(RecordFromEvent(e)); err != nil {
		r.logger.Warn("failed to record trial event", "type", string(e.Type), "error", err)
	}
}

// Flush returns once every event published so far has been written.
func (r *Recorder) Flush() {
	ack := make(chan struct{})
	select {
	case r.flush <- ack:
		<-ack
	case <-r.done:
	}
}

// Close stops the recorder after writing every event published so far.
func (r *Recorder) Close() {
	r.hub.Unsubscribe(r.ch)
	close(r.stop)
	<-r.done
}

// RecordFromEvent converts a hub event to a history record.
func RecordFromEvent(e events.Event) Record {
	rec := Record{
		Timestamp: e.Timestamp,
		Action:    string(e.Type),
		Source:    e.Source,
	}
	switch data := e.Data.(type) {
	case events.TrialData:
		rec.InstallDate = data.InstallDate
		rec.ExpirationDate = data.ExpirationDate
		rec.TrialPeriodDays = data.TrialPeriodDays
		rec.Delta = data.Delta
	case events.SaveFailedData:
		rec.Detail = data.Error
	}
	return rec
}
