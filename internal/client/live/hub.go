package live

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/vpndb/internal/logging"
)

// Reader returns the current rows of a bucket in insertion order.
type Reader interface {
	Snapshot(ctx context.Context, bucket string) ([]Row, error)
}

// query is the type-erased side of a subscription the hub works with.
// All methods are called with Hub.mu held.
type query interface {
	bucket() string
	filter(rows []Row) []Row
	baseline() []Row
	setBaseline(rows []Row)
	deliver(ctx context.Context, rows []Row)
	reset()
	close()
}

type Hub struct {
	mu      sync.Mutex
	reader  Reader
	log     logging.Logger
	queries map[uint64]query
	nextID  uint64
	closed  bool
}

func NewHub(reader Reader, log logging.Logger) *Hub {
	return &Hub{
		reader:  reader,
		log:     log,
		queries: make(map[uint64]query),
	}
}

// register installs q, reads its initial rows and emits them.
func (h *Hub) register(ctx context.Context, q query) (uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		q.close()
		return 0, false
	}

	h.nextID++
	id := h.nextID
	h.queries[id] = q

	rows, _, err := h.read(ctx, q.bucket())
	if err != nil {
		h.log.Warn(ctx, "initial query read failed, emitting empty result", "bucket", q.bucket(), "error", err)
	}
	rows = q.filter(rows)
	q.setBaseline(rows)
	q.deliver(ctx, rows)
	return id, true
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if q, ok := h.queries[id]; ok {
		delete(h.queries, id)
		q.close()
	}
}

// read fetches a bucket, retrying once on error. recovered reports that
// the first attempt failed and the retry succeeded.
func (h *Hub) read(ctx context.Context, bucket string) (rows []Row, recovered bool, err error) {
	rows, err = h.reader.Snapshot(ctx, bucket)
	if err == nil {
		return rows, false, nil
	}
	h.log.Debug(ctx, "query read failed, retrying", "bucket", bucket, "error", err)
	rows, err = h.reader.Snapshot(ctx, bucket)
	if err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

// Publish refreshes every query on the given buckets and emits the ones
// whose result changed.
func (h *Hub) Publish(ctx context.Context, buckets ...string) {
	if len(buckets) == 0 {
		return
	}
	touched := make(map[string]struct{}, len(buckets))
	for _, b := range buckets {
		touched[b] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	type result struct {
		rows      []Row
		recovered bool
		err       error
	}
	cache := make(map[string]result)

	for _, q := range h.queries {
		b := q.bucket()
		if _, ok := touched[b]; !ok {
			continue
		}
		res, ok := cache[b]
		if !ok {
			rows, recovered, err := h.read(ctx, b)
			res = result{rows: rows, recovered: recovered, err: err}
			cache[b] = res
		}

		if res.err != nil {
			// Keep the stream alive with the last result we know.
			h.log.Warn(ctx, "query refresh failed, re-emitting last snapshot", "bucket", b, "error", res.err)
			q.deliver(ctx, q.baseline())
			continue
		}

		rows := q.filter(res.rows)
		if !res.recovered && Diff(q.baseline(), rows).Empty() {
			continue
		}
		q.setBaseline(rows)
		q.deliver(ctx, rows)
	}
}

// Clear makes every query emit its empty value and forgets its baseline.
func (h *Hub) Clear(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, q := range h.queries {
		q.reset()
	}
	h.log.Debug(ctx, "live queries cleared", "count", len(h.queries))
}

// Len reports how many queries are open.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queries)
}

// Close closes every subscription. Later subscriptions are closed at once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, q := range h.queries {
		q.close()
		delete(h.queries, id)
	}
	h.closed = true
}
