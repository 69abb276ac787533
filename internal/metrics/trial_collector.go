package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TrialSource is the read side of trial.Controller.
type TrialSource interface {
	IsExpired() bool
	TotalDays() int
	Remaining() time.Duration
	DateInstalled() time.Time
	DateExpired() time.Time
}

type trialCollector struct {
	src TrialSource

	expired    *prometheus.Desc
	periodDays *prometheus.Desc
	remaining  *prometheus.Desc
	installed  *prometheus.Desc
	expires    *prometheus.Desc
}

func newTrialCollector(src TrialSource) *trialCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "trial", name), help, nil, nil)
	}
	return &trialCollector{
		src:        src,
		expired:    desc("expired", "1 if the trial has expired"),
		periodDays: desc("period_days", "Total trial length in days including extensions"),
		remaining:  desc("remaining_seconds", "Seconds until the trial expires"),
		installed:  desc("install_timestamp_seconds", "Unix time the trial started"),
		expires:    desc("expiration_timestamp_seconds", "Unix time the trial expires"),
	}
}

func (c *trialCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.expired
	ch <- c.periodDays
	ch <- c.remaining
	ch <- c.installed
	ch <- c.expires
}

func (c *trialCollector) Collect(ch chan<- prometheus.Metric) {
	expired := 0.0
	if c.src.IsExpired() {
		expired = 1
	}

	ch <- prometheus.MustNewConstMetric(c.expired, prometheus.GaugeValue, expired)
	ch <- prometheus.MustNewConstMetric(c.periodDays, prometheus.GaugeValue, float64(c.src.TotalDays()))
	ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, c.src.Remaining().Seconds())
	ch <- prometheus.MustNewConstMetric(c.installed, prometheus.GaugeValue, unixSeconds(c.src.DateInstalled()))
	ch <- prometheus.MustNewConstMetric(c.expires, prometheus.GaugeValue, unixSeconds(c.src.DateExpired()))
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
