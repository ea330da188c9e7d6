// Package common defines shared constants and sentinel errors used by the
// object store, the migration engine and the repository facade. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrStoreClosed   = errors.New("store closed")
	ErrStoreNotReady = errors.New("store not ready: migration has not run")
	ErrStoreReady    = errors.New("store already open for general use")

	// Facade write policy errors.
	ErrWriteFailure = errors.New("write failure")

	// Migration errors.
	ErrMigrationFailure = errors.New("migration failure")
	ErrSchemaTooNew     = errors.New("stored schema is newer than this build")

	// Record patching errors.
	ErrUnknownProperty = errors.New("unknown property")
)
