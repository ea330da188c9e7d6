// Package schema upgrades the records of an object store across schema
// versions.
//
// The upgrade is a list of steps, each tagged with the version that
// introduced it. Run reads the stored version, applies in one transaction
// per version every step above it, and records the new version in that
// same transaction. Steps see records as untyped documents, so they can
// read fields the current models no longer carry.
package schema
