package restore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/raoulx24/atlas-archiver/internal/atlas"
	"github.com/raoulx24/atlas-archiver/internal/fault"
	"github.com/raoulx24/atlas-archiver/internal/logging"
)

const (
	DefaultMaxRetries = 100
	DefaultInterval   = 10 * time.Second
)

// ErrJobNotFound is returned when the provider has no job for the handle.
var ErrJobNotFound = errors.New("restore job not found")

// MaxRetriesError reports that the delivery URL never appeared.
type MaxRetriesError struct {
	MaxRetries int
}

func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("delivery url not ready after %d attempts", e.MaxRetries)
}

// errPending marks an attempt where the job exists but has no delivery URL yet.
var errPending = errors.New("delivery url pending")

// JobFetcher is the provider call behind Poller.
type JobFetcher interface {
	GetRestoreJob(ctx context.Context, cluster, id string) (*atlas.RestoreJob, error)
}

// PollOptions bounds the wait. Zero values take the defaults.
type PollOptions struct {
	MaxRetries int
	Interval   time.Duration
	// Timer drives the waits between attempts; nil uses a real timer.
	Timer backoff.Timer
}

// Delivery is a ready artifact location.
type Delivery struct {
	URL      string
	Attempts int
}

// Poller waits for a restore job to expose its delivery URL, fetching it at a
// fixed interval up to MaxRetries times.
type Poller struct {
	api  JobFetcher
	opts PollOptions
	log  logging.Logger
}

// NewPoller returns a Poller.
func NewPoller(api JobFetcher, opts PollOptions, log logging.Logger) *Poller {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Poller{api: api, opts: opts, log: log}
}

// Poll returns the first delivery URL of the job. A missing job fails at once
// and is not retried. Provider errors are not retried either.
func (p *Poller) Poll(ctx context.Context, h Handle) (Delivery, error) {
	var (
		attempts int
		url      string
	)

	op := func() error {
		attempts++
		job, err := p.api.GetRestoreJob(ctx, h.Cluster, h.JobID)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetching restore job %s: %w", h.JobID, err))
		}
		if job == nil {
			return backoff.Permanent(fault.New(fault.NotFound, "poll restore job",
				fmt.Errorf("%w: %s", ErrJobNotFound, h.JobID)))
		}
		if len(job.DeliveryURL) == 0 || job.DeliveryURL[0] == "" {
			return errPending
		}
		url = job.DeliveryURL[0]
		return nil
	}

	notify := func(_ error, wait time.Duration) {
		p.log.Debug("delivery url not ready", "job", h.JobID, "attempt", attempts, "wait", wait)
	}

	// N attempts means N-1 waits. WithMaxRetries treats 0 as unbounded.
	var b backoff.BackOff = &backoff.StopBackOff{}
	if p.opts.MaxRetries > 1 {
		b = backoff.WithMaxRetries(backoff.NewConstantBackOff(p.opts.Interval), uint64(p.opts.MaxRetries-1))
	}

	err := backoff.RetryNotifyWithTimer(op, backoff.WithContext(b, ctx), notify, p.opts.Timer)
	switch {
	case err == nil:
		return Delivery{URL: url, Attempts: attempts}, nil
	case ctx.Err() != nil:
		return Delivery{}, ctx.Err()
	case errors.Is(err, errPending):
		return Delivery{}, fault.New(fault.MaxRetriesExceeded, "poll restore job",
			&MaxRetriesError{MaxRetries: p.opts.MaxRetries})
	}
	return Delivery{}, err
}
