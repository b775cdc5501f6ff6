package realtime

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/api/metrics"
	"github.com/focusboard/focusboard-api/internal/core/domain"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

type envelope struct {
	userID int64
	event  domain.Event
}

// Dispatcher routes change events to a fixed set of workers by user id, so
// events for one user reach the hub in the order they were published.
// It implements ports.EventPublisher.
type Dispatcher struct {
	workers []chan envelope
	hub     *Hub
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// buffering up to queueSize events. Non-positive values use the defaults.
func NewDispatcher(hub *Hub, numWorkers, queueSize int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &Dispatcher{
		workers: make([]chan envelope, numWorkers),
		hub:     hub,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan envelope, queueSize)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish queues event for the user's room without blocking. When the
// worker queue is full the event is dropped.
func (d *Dispatcher) Publish(_ context.Context, userID int64, event domain.Event) {
	idx := d.shardIndex(userID)
	select {
	case d.workers[idx] <- envelope{userID: userID, event: event}:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsDroppedTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Int64("user_id", userID).
			Str("event", event.Name()).
			Int("worker_id", idx).
			Msg("realtime queue full, event dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	n := int64(len(d.workers))
	return int(((userID % n) + n) % n)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan envelope) {
	depth := metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-ch:
			depth.Set(float64(len(ch)))
			d.deliver(id, env)
		}
	}
}

func (d *Dispatcher) deliver(workerID int, env envelope) {
	name := env.event.Name()
	payload, err := encode(name, env.event.Payload)
	if err != nil {
		d.log.Error().Err(err).
			Str("event", name).
			Int("worker_id", workerID).
			Msg("encode event failed")
		return
	}
	n := d.hub.Broadcast(RoomName(env.userID), payload)
	metrics.EventsPublishedTotal.WithLabelValues(name).Inc()
	d.log.Debug().
		Int64("user_id", env.userID).
		Str("event", name).
		Int("recipients", n).
		Msg("event delivered")
}
