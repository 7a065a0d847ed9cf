package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/account-api/internal/api/metrics"
	"github.com/storefront/account-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Throttle decides whether a usage write may go through for a token right now.
// Release gives the window back after a failed write.
type Throttle interface {
	Acquire(ctx context.Context, tokenID string) (bool, error)
	Release(ctx context.Context, tokenID string) error
}

// UsageWriter persists token usage.
type UsageWriter interface {
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

// Dispatcher routes token usage records to a fixed set of workers using
// consistent hashing on the token id, so writes for one token are serialized.
type Dispatcher struct {
	workers  []chan domain.TokenUsage
	writer   UsageWriter
	throttle Throttle
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. throttle may be nil.
func NewDispatcher(numWorkers int, writer UsageWriter, throttle Throttle, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.TokenUsage, numWorkers),
		writer:   writer,
		throttle: throttle,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TokenUsage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record hands a usage record to the worker owning its token. It never blocks:
// when the shard is full the record is dropped.
func (d *Dispatcher) Record(usage domain.TokenUsage) {
	idx := d.shardIndex(usage.TokenID)
	select {
	case d.workers[idx] <- usage:
		metrics.TokenUsageQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.TokenUsageDroppedTotal.Inc()
		d.log.Debug().Str("token_id", usage.TokenID).Msg("usage queue full, record dropped")
	}
}

// shardIndex maps a token id deterministically to a worker index.
func (d *Dispatcher) shardIndex(tokenID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tokenID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TokenUsage) {
	for {
		select {
		case <-ctx.Done():
			return
		case usage, ok := <-ch:
			if !ok {
				return
			}
			metrics.TokenUsageQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.process(ctx, id, usage)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, worker int, usage domain.TokenUsage) {
	acquired := false
	if d.throttle != nil {
		ok, err := d.throttle.Acquire(ctx, usage.TokenID)
		if err != nil {
			d.log.Warn().Err(err).Str("token_id", usage.TokenID).Msg("usage throttle failed, writing anyway")
		} else if !ok {
			return
		}
		acquired = ok
	}

	if err := d.writer.TouchLastUsed(ctx, usage.TokenID, usage.At); err != nil {
		d.log.Error().Err(err).
			Str("token_id", usage.TokenID).
			Int("worker_id", worker).
			Msg("token usage write failed")
		if !acquired {
			return
		}
		if err := d.throttle.Release(ctx, usage.TokenID); err != nil {
			d.log.Warn().Err(err).Str("token_id", usage.TokenID).Msg("usage throttle release failed")
		}
	}
}
