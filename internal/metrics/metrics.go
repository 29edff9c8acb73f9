// Package metrics pushes the outcome of a run to a Prometheus Pushgateway.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/raoulx24/atlas-archiver/internal/logging"
)

// Run is what a finished run reports.
type Run struct {
	Cluster       string
	Started       time.Time
	Finished      time.Time
	Success       bool
	PollAttempts  int
	Pruned        int
	PruneFailures int
}

// Recorder owns a private registry so pushes carry only archiver metrics.
type Recorder struct {
	url string
	job string
	log logging.Logger

	lastRun       prometheus.Gauge
	lastSuccess   prometheus.Gauge
	duration      prometheus.Gauge
	pollAttempts  prometheus.Gauge
	pruned        prometheus.Gauge
	pruneFailures prometheus.Gauge
}

// NewRecorder returns a Recorder pushing to url under job. An empty url
// disables pushing.
func NewRecorder(url, job string, log logging.Logger) *Recorder {
	f := promauto.With(prometheus.NewRegistry())
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	}

	return &Recorder{
		url: url,
		job: job,
		log: log,

		lastRun:       gauge("archiver_last_run_timestamp_seconds", "Unix time the last run finished"),
		lastSuccess:   gauge("archiver_last_success_timestamp_seconds", "Unix time the last successful run finished"),
		duration:      gauge("archiver_run_duration_seconds", "Duration of the last run"),
		pollAttempts:  gauge("archiver_poll_attempts", "Restore job fetches needed before the delivery url was ready"),
		pruned:        gauge("archiver_pruned_objects", "Archived objects deleted by retention in the last run"),
		pruneFailures: gauge("archiver_prune_failures", "Archived objects retention failed to delete in the last run"),
	}
}

// Enabled reports whether a Pushgateway is configured.
func (r *Recorder) Enabled() bool { return r.url != "" }

// Push sends the run to the gateway, grouped by cluster. A successful run
// replaces the group; a failed one only updates its own gauges so the last
// success timestamp survives.
func (r *Recorder) Push(ctx context.Context, run Run) error {
	if !r.Enabled() {
		return nil
	}

	r.lastRun.Set(float64(run.Finished.Unix()))
	r.duration.Set(run.Finished.Sub(run.Started).Seconds())
	r.pollAttempts.Set(float64(run.PollAttempts))
	r.pruned.Set(float64(run.Pruned))
	r.pruneFailures.Set(float64(run.PruneFailures))

	p := push.New(r.url, r.job).
		Grouping("cluster", run.Cluster).
		Collector(r.lastRun).
		Collector(r.duration).
		Collector(r.pollAttempts).
		Collector(r.pruned).
		Collector(r.pruneFailures)

	var err error
	if run.Success {
		r.lastSuccess.Set(float64(run.Finished.Unix()))
		err = p.Collector(r.lastSuccess).PushContext(ctx)
	} else {
		err = p.AddContext(ctx)
	}
	if err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", r.url, err)
	}
	r.log.Debug("metrics pushed", "gateway", r.url, "job", r.job, "cluster", run.Cluster)
	return nil
}
