package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
	enqueueTimeout = 2 * time.Second
)

// Dispatcher routes order events to a fixed set of workers using consistent
// hashing on the order id, so the audit trail of one order is written in the
// order the events were published.
type Dispatcher struct {
	workers []chan domain.OrderEvent
	repo    ports.AuditRepository
	log     zerolog.Logger

	enqueueTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	return newDispatcher(numWorkers, channelBuffer, repo, log)
}

func newDispatcher(numWorkers, buffer int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:        make([]chan domain.OrderEvent, numWorkers),
		repo:           repo,
		log:            log,
		enqueueTimeout: enqueueTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OrderEvent, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its order. When that
// worker's buffer is full it waits up to enqueueTimeout for room and then
// drops the event; it never writes around the queue, so events of one order
// are persisted in publish order. Events published after Close are discarded.
func (d *Dispatcher) Publish(event domain.OrderEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("order_id", event.OrderID).Msg("audit dispatcher closed, event dropped")
		return
	}

	idx := d.shardIndex(event.OrderID)
	ch := d.workers[idx]
	select {
	case ch <- event:
	default:
		timer := time.NewTimer(d.enqueueTimeout)
		defer timer.Stop()
		select {
		case ch <- event:
		case <-timer.C:
			d.log.Error().
				Str("order_id", event.OrderID).
				Str("type", string(event.Type)).
				Int("worker_id", idx).
				Msg("audit queue full, event dropped")
			return
		}
	}
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
}

// Close stops accepting events and blocks until queued events are persisted.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OrderEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, event)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, event domain.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	start := time.Now()
	if err := d.repo.Insert(ctx, &event); err != nil {
		metrics.AuditWriteDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("order_id", event.OrderID).
			Str("type", string(event.Type)).
			Int("worker_id", id).
			Msg("order event persistence failed")
		return
	}
	metrics.AuditWriteDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}
