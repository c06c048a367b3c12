package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the service's Prometheus metrics. A nil *Collectors is
// valid and records nothing.
type Collectors struct {
	FilesIngested  *prometheus.CounterVec
	RowsDropped    *prometheus.CounterVec
	Reports        *prometheus.CounterVec
	ReportDuration prometheus.Histogram
	Fetches        *prometheus.CounterVec
}

// New builds the collectors and registers them with reg when reg is non-nil.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		FilesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socialreport",
			Name:      "files_ingested_total",
			Help:      "Uploaded tables by detected kind and outcome.",
		}, []string{"kind", "outcome"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socialreport",
			Name:      "rows_dropped_total",
			Help:      "Rows excluded during normalization for lacking a usable date.",
		}, []string{"kind"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socialreport",
			Name:      "reports_total",
			Help:      "Report generation attempts by outcome.",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "socialreport",
			Name:      "report_duration_seconds",
			Help:      "Time spent computing a report.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socialreport",
			Name:      "remote_fetch_attempts_total",
			Help:      "Remote export download attempts by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(c.FilesIngested, c.RowsDropped, c.Reports, c.ReportDuration, c.Fetches)
	}
	return c
}

func (c *Collectors) IncFile(kind, outcome string) {
	if c == nil || c.FilesIngested == nil {
		return
	}
	c.FilesIngested.WithLabelValues(kind, outcome).Inc()
}

func (c *Collectors) AddDropped(kind string, n int) {
	if c == nil || c.RowsDropped == nil || n <= 0 {
		return
	}
	c.RowsDropped.WithLabelValues(kind).Add(float64(n))
}

func (c *Collectors) ObserveReport(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	if c.Reports != nil {
		c.Reports.WithLabelValues(outcome).Inc()
	}
	if c.ReportDuration != nil && outcome == "ok" {
		c.ReportDuration.Observe(d.Seconds())
	}
}

func (c *Collectors) IncFetch(outcome string) {
	if c == nil || c.Fetches == nil {
		return
	}
	c.Fetches.WithLabelValues(outcome).Inc()
}
