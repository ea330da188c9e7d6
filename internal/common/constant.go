// Package common contains shared constants and sentinel errors used across
// the local database components.
package common

// Default file names inside the configured data directory.
const (
	StoreFileName       = "store.db"
	PreferencesFileName = "preferences.db"
)
