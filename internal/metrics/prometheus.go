// Package metrics exposes the trial state and settings-store activity as
// Prometheus metrics. Nothing here leaves the process: the CLI prints the
// exposition text on request.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"grimm.is/apptrial/internal/events"
	"grimm.is/apptrial/internal/settings"
)

const namespace = "apptrial"

// Load results used as the "result" label of LoadsTotal.
const (
	ResultOK          = "ok"
	ResultMissing     = "missing"
	ResultDecodeError = "decode_error"
	ResultIOError     = "io_error"
	ResultError       = "error"
)

// Registry holds all trial metrics on a private prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	LoadsTotal *prometheus.CounterVec
	SavesTotal *prometheus.CounterVec
}

// New creates a Registry with the settings counters registered.
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.LoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "settings",
		Name:      "loads_total",
		Help:      "Settings file loads by result",
	}, []string{"result"})

	r.SavesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "settings",
		Name:      "saves_total",
		Help:      "Settings file saves by result",
	}, []string{"result"})

	r.reg.MustRegister(r.LoadsTotal, r.SavesTotal)
	return r
}

// ObserveLoad counts a settings load.
func (r *Registry) ObserveLoad(err error) {
	r.LoadsTotal.WithLabelValues(loadResult(err)).Inc()
}

// ObserveSave counts a settings save.
func (r *Registry) ObserveSave(err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.SavesTotal.WithLabelValues(result).Inc()
}

func loadResult(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, fs.ErrNotExist):
		return ResultMissing
	case errors.Is(err, settings.ErrDecode):
		return ResultDecodeError
	case errors.Is(err, settings.ErrIO):
		return ResultIOError
	default:
		return ResultError
	}
}

// WatchTrial registers gauges that read src on every scrape.
func (r *Registry) WatchTrial(src TrialSource) error {
	if err := r.reg.Register(newTrialCollector(src)); err != nil {
		return fmt.Errorf("register trial collector: %w", err)
	}
	return nil
}

// WatchEvents exports the publish and drop counts of hub.
func (r *Registry) WatchEvents(hub *events.Hub) error {
	published := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Trial events published on the hub",
	}, func() float64 {
		n, _ := hub.Stats()
		return float64(n)
	})
	dropped := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "dropped_total",
		Help:      "Trial events dropped because a subscriber was full",
	}, func() float64 {
		_, n := hub.Stats()
		return float64(n)
	})

	for _, c := range []prometheus.Collector{published, dropped} {
		if err := r.reg.Register(c); err != nil {
			return fmt.Errorf("register event metrics: %w", err)
		}
	}
	return nil
}

// Gatherer returns the registry backing WriteText.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteText writes every metric in the Prometheus text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.Gatherer().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
