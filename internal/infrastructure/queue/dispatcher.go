package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/api/metrics"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes tracking-refresh jobs to a fixed set of workers using
// consistent hashing on the shipment reference, guaranteeing that polls for
// one shipment never run concurrently with each other.
type Dispatcher struct {
	workers []chan string
	service ports.TrackingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TrackingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a shipment reference to the worker responsible for it.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(ref string) {
	i := d.shardIndex(ref)
	d.workers[i] <- ref
	metrics.SyncQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple references preserving per-shipment ordering.
func (d *Dispatcher) EnqueueBatch(refs []string) {
	for _, ref := range refs {
		d.Enqueue(ref)
	}
}

// shardIndex maps a reference deterministically to a worker index.
func (d *Dispatcher) shardIndex(ref string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case ref, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.RefreshTracking(ctx, ref); err != nil {
				d.log.Error().Err(err).
					Str("reference", ref).
					Int("worker_id", id).
					Msg("tracking refresh failed")
			}
			metrics.SyncQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
