// Package migrations embeds the goose SQL migrations that create the base
// tables of the two on-device SQLite files: the object store (objects and
// meta) and the preference store.
//
// These migrations own the table layout only. Record-level upgrades between
// schema versions are run by the schema package on top of this layout.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed objects/*.sql preferences/*.sql
var FS embed.FS

// Directories inside FS.
const (
	ObjectsDir     = "objects"
	PreferencesDir = "preferences"
)

// upFunc is a seam for tests.
var upFunc = func(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// Up applies every pending migration found in dir to db.
func Up(ctx context.Context, db *sql.DB, dir string) error {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		return fmt.Errorf("migrations %s: %w", dir, err)
	}
	if err := upFunc(ctx, db, sub); err != nil {
		return fmt.Errorf("migrations %s: %w", dir, err)
	}
	return nil
}
