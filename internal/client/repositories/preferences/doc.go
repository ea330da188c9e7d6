// Package preferences is the key/value store for simple settings. It lives
// in its own SQLite file next to the object store and receives the settings
// that schema version 47 moved out of the UserPreferences record.
//
// Values are JSON documents; GetString/SetString and GetBool/SetBool cover
// the common cases.
package preferences
