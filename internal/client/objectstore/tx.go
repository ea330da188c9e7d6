package objectstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/dbx"
)

// Row is a stored record: its key and its JSON document.
type Row = live.Row

// Querier is implemented by the store (committed data) and by Tx (data as
// seen inside the transaction).
type Querier interface {
	Load(ctx context.Context, bucket, key string) ([]byte, bool, error)
	Scan(ctx context.Context, bucket string) ([]Row, error)
}

type reader struct {
	db dbx.DBTX
}

// Load returns the document stored under bucket/key. ok is false when there
// is none.
func (r reader) Load(ctx context.Context, bucket, key string) (data []byte, ok bool, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT data FROM objects WHERE bucket = ? AND key = ?`, bucket, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s/%s: %w", bucket, key, err)
	}
	return data, true, nil
}

// Scan returns every row of bucket in insertion order.
func (r reader) Scan(ctx context.Context, bucket string) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, data FROM objects WHERE bucket = ? ORDER BY rowid`, bucket)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", bucket, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.Data); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", bucket, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", bucket, err)
	}
	return out, nil
}

// Tx is a write transaction. It remembers which buckets it touched so the
// store can refresh the matching live queries after commit.
type Tx struct {
	reader
	touched map[string]struct{}
}

func newTx(db dbx.DBTX) *Tx {
	return &Tx{reader: reader{db: db}, touched: make(map[string]struct{})}
}

func (t *Tx) touch(bucket string) { t.touched[bucket] = struct{}{} }

// Put inserts or replaces a document. A replaced row keeps its position.
func (t *Tx) Put(ctx context.Context, bucket, key string, data []byte) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO objects (bucket, key, data) VALUES (?, ?, ?)
		ON CONFLICT(bucket, key) DO UPDATE SET data = excluded.data
	`, bucket, key, data)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	t.touch(bucket)
	return nil
}

// Delete removes bucket/key and reports whether a row was there.
func (t *Tx) Delete(ctx context.Context, bucket, key string) (bool, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM objects WHERE bucket = ? AND key = ?`, bucket, key)
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	if n > 0 {
		t.touch(bucket)
	}
	return n > 0, nil
}

// DeleteBucket removes every row of bucket.
func (t *Tx) DeleteBucket(ctx context.Context, bucket string) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM objects WHERE bucket = ?`, bucket)
	if err != nil {
		return 0, fmt.Errorf("delete bucket %s: %w", bucket, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete bucket %s: %w", bucket, err)
	}
	t.touch(bucket)
	return n, nil
}

// deleteEverything wipes all records and returns the buckets that had any.
func (t *Tx) deleteEverything(ctx context.Context) ([]string, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT DISTINCT bucket FROM objects`)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	var buckets []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list buckets: %w", err)
		}
		buckets = append(buckets, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	if _, err := t.db.ExecContext(ctx, `DELETE FROM objects`); err != nil {
		return nil, fmt.Errorf("delete objects: %w", err)
	}
	for _, b := range buckets {
		t.touch(b)
	}
	return buckets, nil
}

// Meta reads a value from the meta table.
func (t *Tx) Meta(ctx context.Context, key string) (string, bool, error) {
	return readMeta(ctx, t.db, key)
}

// SetMeta writes a value to the meta table.
func (t *Tx) SetMeta(ctx context.Context, key, value string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set meta[%s]: %w", key, err)
	}
	return nil
}

// Buckets lists the touched buckets, sorted.
func (t *Tx) Buckets() []string {
	out := make([]string, 0, len(t.touched))
	for b := range t.touched {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

func readMeta(ctx context.Context, db dbx.DBTX, key string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get meta[%s]: %w", key, err)
	}
	return v, true, nil
}
