package localdb

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
	"github.com/dmitrijs2005/vpndb/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/vpndb/internal/client/schema"
	"github.com/dmitrijs2005/vpndb/internal/logging"
)

type Options struct {
	// WriteTimeout bounds user-initiated writes. Zero means no bound.
	WriteTimeout time.Duration
	// BusyTimeout is passed to SQLite by Open.
	BusyTimeout time.Duration
}

type Database struct {
	store        *objectstore.Store
	prefs        preferences.Repository
	engine       *schema.Engine
	log          logging.Logger
	writeTimeout time.Duration
}

// New wraps an opened store and preference repository.
func New(store *objectstore.Store, prefs preferences.Repository, log logging.Logger, opts Options) *Database {
	return &Database{
		store:        store,
		prefs:        prefs,
		engine:       schema.New(store, prefs, log),
		log:          log.With("component", "localdb"),
		writeTimeout: opts.WriteTimeout,
	}
}

// Open opens the object store and the preference store. Call Migrate
// before anything else.
func Open(ctx context.Context, storePath, prefsPath string, log logging.Logger, opts Options) (*Database, error) {
	store, err := objectstore.Open(ctx, storePath, log, objectstore.Options{BusyTimeout: opts.BusyTimeout})
	if err != nil {
		return nil, err
	}
	prefs, err := preferences.Open(ctx, prefsPath)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return New(store, prefs, log, opts), nil
}

// Store exposes the underlying object store.
func (d *Database) Store() *objectstore.Store { return d.store }

// Preferences exposes the preference store.
func (d *Database) Preferences() preferences.Repository { return d.prefs }

func (d *Database) Migrate(ctx context.Context) error {
	if d.store.Ready() {
		return nil
	}
	res, err := d.engine.Run(ctx)
	if err != nil {
		return err
	}
	d.store.MarkReady()
	d.log.Info(ctx, "local database ready", "schema_version", res.To, "applied", len(res.Applied))
	return nil
}

func (d *Database) Clean(ctx context.Context) error {
	return d.mutate(ctx, "Clean", nil)
}

// Close closes the object store and, when it owns one, the preference
// store.
func (d *Database) Close() error {
	err := d.store.Close()
	if c, ok := d.prefs.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// exec queues a write under the policy registered for op. A nil fn means
// a full wipe.
func (d *Database) exec(ctx context.Context, op string, fn func(ctx context.Context, tx *objectstore.Tx) error) *objectstore.Pending {
	policy := PolicyFor(op)

	var p *objectstore.Pending
	if fn == nil {
		p = d.store.CleanAsync(ctx)
	} else {
		p = d.store.WriteAsync(ctx, fn)
	}

	log := d.log
	return p.Then(func(err error) error {
		if err == nil {
			return nil
		}
		if policy == LogAndContinue {
			log.Warn(ctx, "write failed, continuing", "op", op, "error", err)
			return nil
		}
		log.Error(ctx, "write failed", "op", op, "error", err)
		return &WriteError{Op: op, Err: err}
	})
}

// mutate runs a user-initiated write and waits for it.
func (d *Database) mutate(ctx context.Context, op string, fn func(ctx context.Context, tx *objectstore.Tx) error) error {
	if d.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.writeTimeout)
		defer cancel()
	}
	if err := d.exec(ctx, op, fn).Wait(ctx); err != nil {
		var we *WriteError
		if errors.As(err, &we) {
			return err
		}
		return &WriteError{Op: op, Err: err}
	}
	return nil
}

// upsert is the common shape of a save.
func upsert[T objectstore.Record](d *Database, ctx context.Context, op string, vs ...T) *objectstore.Pending {
	return d.exec(ctx, op, func(ctx context.Context, tx *objectstore.Tx) error {
		return objectstore.UpsertAll(ctx, tx, vs)
	})
}

func readOne[T objectstore.Record](d *Database, ctx context.Context, key string) *T {
	v, err := objectstore.Get[T](ctx, d.store, key)
	if err != nil {
		var zero T
		d.log.Warn(ctx, "read failed", "bucket", zero.Bucket(), "key", key, "error", err)
		return nil
	}
	return v
}

func readAll[T objectstore.Record](d *Database, ctx context.Context) []T {
	vs, err := objectstore.GetAll[T](ctx, d.store)
	if err != nil {
		var zero T
		d.log.Warn(ctx, "read failed", "bucket", zero.Bucket(), "error", err)
		return nil
	}
	return vs
}
