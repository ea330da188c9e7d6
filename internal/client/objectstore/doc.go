// Package objectstore is the on-device object store: typed records kept as
// JSON documents in a single SQLite table, grouped by bucket and keyed by
// their primary key.
//
// Reads may happen from any goroutine. Writes are queued to one writer
// goroutine, so at most one write transaction is open at a time and
// subscribers of the live package observe commits in order.
//
// A store starts closed for writes. The migration engine runs through
// Migrate; MarkReady then opens the writer to everyone else.
package objectstore
