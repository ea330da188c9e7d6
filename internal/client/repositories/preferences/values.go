package preferences

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetString reads a string preference. ok is false when the key is unset.
func GetString(ctx context.Context, r Repository, key string) (v string, ok bool, err error) {
	ok, err = get(ctx, r, key, &v)
	return v, ok, err
}

// GetBool reads a boolean preference. ok is false when the key is unset.
func GetBool(ctx context.Context, r Repository, key string) (v bool, ok bool, err error) {
	ok, err = get(ctx, r, key, &v)
	return v, ok, err
}

func SetString(ctx context.Context, r Repository, key, v string) error {
	return SetJSON(ctx, r, key, v)
}

func SetBool(ctx context.Context, r Repository, key string, v bool) error {
	return SetJSON(ctx, r, key, v)
}

// SetJSON stores any JSON-encodable value under key.
func SetJSON(ctx context.Context, r Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode preference[%s]: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}

func get(ctx context.Context, r Repository, key string, dst any) (bool, error) {
	raw, err := r.Get(ctx, key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode preference[%s]: %w", key, err)
	}
	return true, nil
}
