// Package poller is the scheduled trigger for batch tracking refresh: every
// interval it lists the shipments that are submitted but not yet delivered
// and fans them out through the sync dispatcher.
package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/api/metrics"
)

// ShipmentLister yields the references due for a tracking poll.
type ShipmentLister interface {
	ListPendingTracking(ctx context.Context) ([]string, error)
}

// Enqueuer hands refresh jobs to the sharded dispatcher.
type Enqueuer interface {
	Enqueue(ref string)
}

// CooldownGuard suppresses shipments polled too recently (Redis).
type CooldownGuard interface {
	Recently(ctx context.Context, ref string) (bool, error)
	Mark(ctx context.Context, ref string) error
}

// Runner drives the periodic sync loop.
type Runner struct {
	interval time.Duration
	lister   ShipmentLister
	queue    Enqueuer
	guard    CooldownGuard // optional; nil disables the cooldown
	log      zerolog.Logger
}

func NewRunner(interval time.Duration, lister ShipmentLister, queue Enqueuer, guard CooldownGuard, log zerolog.Logger) *Runner {
	return &Runner{
		interval: interval,
		lister:   lister,
		queue:    queue,
		guard:    guard,
		log:      log,
	}
}

// Run blocks until ctx is cancelled, triggering one batch per interval.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				metrics.SyncRunsTotal.WithLabelValues("error").Inc()
				r.log.Error().Err(err).Msg("batch tracking sync failed")
				continue
			}
			metrics.SyncRunsTotal.WithLabelValues("ok").Inc()
		}
	}
}

// RunOnce lists pending shipments and enqueues everything outside the
// cooldown window. Exported so the connection-test tooling and tests can
// trigger a single pass.
func (r *Runner) RunOnce(ctx context.Context) error {
	refs, err := r.lister.ListPendingTracking(ctx)
	if err != nil {
		return err
	}

	enqueued := 0
	for _, ref := range refs {
		if r.guard != nil {
			recent, err := r.guard.Recently(ctx, ref)
			if err != nil {
				r.log.Warn().Err(err).Str("reference", ref).Msg("cooldown check failed, polling anyway")
			} else if recent {
				continue
			}
			if err := r.guard.Mark(ctx, ref); err != nil {
				r.log.Warn().Err(err).Str("reference", ref).Msg("failed to set cooldown key")
			}
		}
		r.queue.Enqueue(ref)
		enqueued++
	}

	r.log.Info().Int("pending", len(refs)).Int("enqueued", enqueued).Msg("batch tracking sync scheduled")
	return nil
}
