package objectstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/migrations"
	"github.com/dmitrijs2005/vpndb/internal/common"
	"github.com/dmitrijs2005/vpndb/internal/dbx"
	"github.com/dmitrijs2005/vpndb/internal/filex"
	"github.com/dmitrijs2005/vpndb/internal/logging"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Options tune how the SQLite file is opened.
type Options struct {
	// BusyTimeout is how long a connection waits on a locked database.
	BusyTimeout time.Duration
}

type job struct {
	ctx     context.Context
	fn      func(ctx context.Context, tx *Tx) error
	clean   bool
	pending *Pending
}

type Store struct {
	db   *sql.DB
	path string
	log  logging.Logger
	hub  *live.Hub

	mu     sync.Mutex
	queue  []job
	ready  bool
	closed bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// Open opens (creating if needed) the store at path and applies the base
// schema. The returned store accepts Migrate but no writes until MarkReady.
func Open(ctx context.Context, path string, log logging.Logger, opts Options) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbx.SQLiteDSN(path, opts.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if err := migrations.Up(ctx, db, migrations.ObjectsDir); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := newStore(db, log)
	s.path = path
	log.Info(ctx, "object store opened", "path", path)
	return s, nil
}

func newStore(db *sql.DB, log logging.Logger) *Store {
	s := &Store{
		db:   db,
		log:  log,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.hub = live.NewHub(s, log.With("component", "live"))
	go s.writer()
	return s
}

// Path is the database file location.
func (s *Store) Path() string { return s.path }

// Hub returns the live query hub fed by this store's commits.
func (s *Store) Hub() *live.Hub { return s.hub }

// Load reads a committed document.
func (s *Store) Load(ctx context.Context, bucket, key string) ([]byte, bool, error) {
	return reader{db: s.db}.Load(ctx, bucket, key)
}

// Scan reads the committed rows of bucket.
func (s *Store) Scan(ctx context.Context, bucket string) ([]Row, error) {
	return reader{db: s.db}.Scan(ctx, bucket)
}

// Snapshot implements live.Reader.
func (s *Store) Snapshot(ctx context.Context, bucket string) ([]Row, error) {
	return s.Scan(ctx, bucket)
}

// Meta reads a committed meta value.
func (s *Store) Meta(ctx context.Context, key string) (string, bool, error) {
	return readMeta(ctx, s.db, key)
}

// Migrate runs fn in its own transaction. It is only allowed before the
// store is marked ready.
func (s *Store) Migrate(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	s.mu.Lock()
	closed, ready := s.closed, s.ready
	s.mu.Unlock()
	if closed {
		return common.ErrStoreClosed
	}
	if ready {
		return common.ErrStoreReady
	}

	tx, err := s.commit(ctx, fn)
	if err != nil {
		return err
	}
	s.hub.Publish(context.WithoutCancel(ctx), tx.Buckets()...)
	return nil
}

// MarkReady opens the store for writes.
func (s *Store) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// Ready reports whether MarkReady was called.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// WriteAsync queues fn to run in a write transaction on the writer
// goroutine. Writes run in the order they were queued.
func (s *Store) WriteAsync(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) *Pending {
	return s.enqueue(job{ctx: ctx, fn: fn})
}

// Write queues fn and waits for it to commit.
func (s *Store) Write(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	return s.WriteAsync(ctx, fn).Wait(ctx)
}

// Clean deletes every record. Live queries emit their empty value before
// the delete runs, and no other write can run between the two.
func (s *Store) Clean(ctx context.Context) error {
	return s.CleanAsync(ctx).Wait(ctx)
}

// CleanAsync queues Clean.
func (s *Store) CleanAsync(ctx context.Context) *Pending {
	return s.enqueue(job{ctx: ctx, clean: true})
}

func (s *Store) enqueue(j job) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Resolved(common.ErrStoreClosed)
	}
	if !s.ready {
		return Resolved(common.ErrStoreNotReady)
	}

	j.pending = newPending()
	s.queue = append(s.queue, j)
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return j.pending
}

func (s *Store) pop() (job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return job{}, false
	}
	j := s.queue[0]
	s.queue[0] = job{}
	s.queue = s.queue[1:]
	return j, true
}

func (s *Store) writer() {
	defer close(s.done)
	for {
		s.drain()
		select {
		case <-s.quit:
			// Everything queued before Close still runs.
			s.drain()
			return
		case <-s.wake:
		}
	}
}

func (s *Store) drain() {
	for {
		j, ok := s.pop()
		if !ok {
			return
		}
		j.pending.resolve(s.run(j))
	}
}

func (s *Store) run(j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			s.log.Error(j.ctx, "write panicked", "panic", p)
			err = fmt.Errorf("write panicked: %v", p)
		}
	}()

	fn := j.fn
	if j.clean {
		s.hub.Clear(j.ctx)
		fn = func(ctx context.Context, tx *Tx) error {
			buckets, err := tx.deleteEverything(ctx)
			if err == nil {
				s.log.Info(ctx, "store cleaned", "buckets", len(buckets))
			}
			return err
		}
	}

	tx, err := s.commit(j.ctx, fn)
	if err != nil {
		s.log.Debug(j.ctx, "write rolled back", "error", err)
		return err
	}
	s.hub.Publish(context.WithoutCancel(j.ctx), tx.Buckets()...)
	return nil
}

func (s *Store) commit(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) (*Tx, error) {
	var t *Tx
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, db dbx.DBTX) error {
		t = newTx(db)
		return fn(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Close waits for queued writes, closes every live subscription and the
// database. Later writes fail with common.ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.quit)
	<-s.done
	s.hub.Close()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
