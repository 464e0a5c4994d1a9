package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/inkpress/publishing-core/internal/api/metrics"
	"github.com/inkpress/publishing-core/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type write struct {
	key  string
	blob []byte
}

// SnapshotWriter drains collection snapshots to the persistence backend on a
// fixed set of workers, sharded by snapshot key. Writes for the same key
// always land on the same worker, so a newer snapshot can never be
// overtaken by an older one. Failures are logged and counted, never
// reported to the mutation that produced the snapshot.
type SnapshotWriter struct {
	workers []chan write
	snaps   ports.Snapshotter
	log     zerolog.Logger
}

// NewSnapshotWriter creates a writer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSnapshotWriter(numWorkers int, snaps ports.Snapshotter, log zerolog.Logger) *SnapshotWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &SnapshotWriter{
		workers: make([]chan write, numWorkers),
		snaps:   snaps,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan write, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *SnapshotWriter) Start(ctx context.Context) {
	for i, ch := range w.workers {
		go w.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a snapshot to the worker owning its key. Non-blocking up to
// channelBuffer capacity.
func (w *SnapshotWriter) Enqueue(key string, blob []byte) {
	metrics.SnapshotWritesTotal.WithLabelValues(key).Inc()
	w.workers[w.shardIndex(key)] <- write{key: key, blob: blob}
}

// shardIndex maps a snapshot key deterministically to a worker index.
func (w *SnapshotWriter) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(w.workers)
}

func (w *SnapshotWriter) runWorker(ctx context.Context, id int, ch <-chan write) {
	for {
		select {
		case <-ctx.Done():
			return
		case wr, ok := <-ch:
			if !ok {
				return
			}
			if err := w.snaps.Save(ctx, wr.key, wr.blob); err != nil {
				metrics.SnapshotFailuresTotal.WithLabelValues(wr.key).Inc()
				w.log.Error().Err(err).
					Str("collection", wr.key).
					Int("worker_id", id).
					Msg("snapshot write failed")
			}
		}
	}
}
