// Package queue decouples store mutations from durable I/O: writes are
// enqueued and applied by a fixed set of workers sharded by slot key, so all
// writes to the same slot land in call order (last write wins matches the
// order mutations were issued).
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/api/metrics"
	"github.com/bowlapp/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type op struct {
	key    string
	value  []byte
	remove bool
}

// Writer is an asynchronous front for a KeyValueStore. Set and Remove are
// enqueued per-key; Get passes straight through to the backend. It satisfies
// ports.KeyValueStore itself, so the store is wired identically in sync and
// async setups.
type Writer struct {
	backend ports.KeyValueStore
	workers []chan op
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewWriter creates a Writer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewWriter(backend ports.KeyValueStore, numWorkers int, log zerolog.Logger) *Writer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &Writer{
		backend: backend,
		workers: make([]chan op, numWorkers),
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan op, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *Writer) Start(ctx context.Context) {
	for i, ch := range w.workers {
		w.wg.Add(1)
		go w.runWorker(ctx, i, ch)
	}
}

// Wait blocks until all workers have exited. Call after cancelling the ctx
// passed to Start.
func (w *Writer) Wait() {
	w.wg.Wait()
}

// Get reads synchronously from the backend.
func (w *Writer) Get(ctx context.Context, key string) ([]byte, bool) {
	return w.backend.Get(ctx, key)
}

// Set enqueues a write for the key's shard. Non-blocking up to the channel
// buffer.
func (w *Writer) Set(_ context.Context, key string, value []byte) {
	w.workers[w.shardIndex(key)] <- op{key: key, value: value}
}

// Remove enqueues a deletion for the key's shard, ordered with its writes.
func (w *Writer) Remove(_ context.Context, key string) {
	w.workers[w.shardIndex(key)] <- op{key: key, remove: true}
}

// shardIndex maps a slot key deterministically to a worker index.
func (w *Writer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(w.workers)
}

func (w *Writer) runWorker(ctx context.Context, id int, ch <-chan op) {
	defer w.wg.Done()
	depth := metrics.PersistQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			// Drain what is already queued so accepted writes still land.
			for {
				select {
				case o := <-ch:
					w.apply(o)
				default:
					return
				}
			}
		case o := <-ch:
			depth.Set(float64(len(ch)))
			w.apply(o)
		}
	}
}

func (w *Writer) apply(o op) {
	// Fresh context: the originating request may already be done.
	ctx := context.Background()
	if o.remove {
		w.backend.Remove(ctx, o.key)
		return
	}
	w.backend.Set(ctx, o.key, o.value)
}
