package live

import (
	"context"
	"encoding/json"
	"fmt"
)

// Subscription delivers the results of one query. Updates is closed when the
// subscription or its hub is closed.
type Subscription[T any] struct {
	hub *Hub
	id  uint64
	ch  chan T
}

func (s *Subscription[T]) Updates() <-chan T { return s.ch }

// Close stops the query. A value already buffered may still be received
// before the channel reports closed.
func (s *Subscription[T]) Close() {
	if s.id == 0 {
		return
	}
	s.hub.unregister(s.id)
}

// sink adapts a typed subscription to the hub's query interface.
type sink[T any] struct {
	name    string
	keep    func(Row) bool
	project func([]Row) (T, error)
	rows    []Row
	ch      chan T
	done    bool
	onError func(ctx context.Context, err error)
}

func (s *sink[T]) bucket() string { return s.name }

func (s *sink[T]) filter(rows []Row) []Row {
	if s.keep == nil {
		return rows
	}
	var out []Row
	for _, r := range rows {
		if s.keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *sink[T]) baseline() []Row        { return s.rows }
func (s *sink[T]) setBaseline(rows []Row) { s.rows = rows }

func (s *sink[T]) deliver(ctx context.Context, rows []Row) {
	v, err := s.project(rows)
	if err != nil {
		s.onError(ctx, err)
		return
	}
	s.send(v)
}

func (s *sink[T]) reset() {
	s.rows = nil
	var zero T
	s.send(zero)
}

// send replaces any undelivered value with v.
func (s *sink[T]) send(v T) {
	if s.done {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}

func (s *sink[T]) close() {
	if s.done {
		return
	}
	s.done = true
	close(s.ch)
}

func subscribe[T any](ctx context.Context, h *Hub, s *sink[T]) *Subscription[T] {
	s.ch = make(chan T, 1)
	s.onError = func(ctx context.Context, err error) {
		h.log.Warn(ctx, "dropping undecodable query result", "bucket", s.name, "error", err)
	}
	id, _ := h.register(ctx, s)
	return &Subscription[T]{hub: h, id: id, ch: s.ch}
}

func decodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Collection observes every record of a bucket in insertion order.
func Collection[T any](ctx context.Context, h *Hub, bucket string) *Subscription[[]T] {
	return subscribe(ctx, h, &sink[[]T]{
		name:    bucket,
		project: decodeRows[T],
	})
}

// Object observes a single record. It emits nil while the record is absent.
func Object[T any](ctx context.Context, h *Hub, bucket, key string) *Subscription[*T] {
	return subscribe(ctx, h, &sink[*T]{
		name: bucket,
		keep: func(r Row) bool { return r.Key == key },
		project: func(rows []Row) (*T, error) {
			if len(rows) == 0 {
				return nil, nil
			}
			var v T
			if err := json.Unmarshal(rows[0].Data, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
			return &v, nil
		},
	})
}

// Derived observes a projection of a bucket, such as its latest record.
// fn is not called for a cleared query; subscribers get R's zero value.
func Derived[T, R any](ctx context.Context, h *Hub, bucket string, fn func([]T) R) *Subscription[R] {
	return subscribe(ctx, h, &sink[R]{
		name: bucket,
		project: func(rows []Row) (R, error) {
			items, err := decodeRows[T](rows)
			if err != nil {
				var zero R
				return zero, err
			}
			return fn(items), nil
		},
	})
}
