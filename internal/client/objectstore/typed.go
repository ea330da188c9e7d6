package objectstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is a value that can be stored. Both methods must work on the zero
// value for Bucket.
type Record interface {
	Bucket() string
	PrimaryKey() string
}

func bucketOf[T Record]() string {
	var zero T
	return zero.Bucket()
}

// Get returns a copy of the record stored under key, or nil when absent.
func Get[T Record](ctx context.Context, q Querier, key string) (*T, error) {
	bucket := bucketOf[T]()
	data, ok, err := q.Load(ctx, bucket, key)
	if err != nil || !ok {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", bucket, key, err)
	}
	return &v, nil
}

// GetAll returns copies of every record of T in insertion order.
func GetAll[T Record](ctx context.Context, q Querier) ([]T, error) {
	bucket := bucketOf[T]()
	rows, err := q.Scan(ctx, bucket)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", bucket, r.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Upsert inserts v or replaces the record with the same primary key.
func Upsert[T Record](ctx context.Context, tx *Tx, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", v.Bucket(), v.PrimaryKey(), err)
	}
	return tx.Put(ctx, v.Bucket(), v.PrimaryKey(), data)
}

func UpsertAll[T Record](ctx context.Context, tx *Tx, vs []T) error {
	for _, v := range vs {
		if err := Upsert(ctx, tx, v); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the record with v's primary key.
func Delete[T Record](ctx context.Context, tx *Tx, v T) (bool, error) {
	return tx.Delete(ctx, v.Bucket(), v.PrimaryKey())
}

func DeleteAll[T Record](ctx context.Context, tx *Tx, vs []T) error {
	for _, v := range vs {
		if _, err := Delete(ctx, tx, v); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAllOfType empties T's bucket.
func DeleteAllOfType[T Record](ctx context.Context, tx *Tx) error {
	_, err := tx.DeleteBucket(ctx, bucketOf[T]())
	return err
}

// DeleteKeys removes the records of T with the given keys. Keys with no
// record are skipped. It returns how many records were removed.
func DeleteKeys[T Record](ctx context.Context, tx *Tx, keys []string) (int, error) {
	bucket := bucketOf[T]()
	n := 0
	for _, k := range keys {
		ok, err := tx.Delete(ctx, bucket, k)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// DeleteWhere removes the records of T matching pred.
func DeleteWhere[T Record](ctx context.Context, tx *Tx, pred func(T) bool) (int, error) {
	all, err := GetAll[T](ctx, tx)
	if err != nil {
		return 0, err
	}
	var keys []string
	for _, v := range all {
		if pred(v) {
			keys = append(keys, v.PrimaryKey())
		}
	}
	return DeleteKeys[T](ctx, tx, keys)
}
