// Package localdb is the typed facade over the object store that the rest
// of the client talks to. Every entity operation is one method; the
// methods compose store primitives and add no business rules of their own.
//
// Reads never fail: a missing record is nil and a read error is logged and
// reported as nil or empty. Writes follow a per-operation policy: background
// sync saves log failures and carry on, user-initiated mutations return a
// *WriteError the caller must handle.
package localdb
