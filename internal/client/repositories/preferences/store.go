package preferences

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vpndb/internal/client/migrations"
	"github.com/dmitrijs2005/vpndb/internal/dbx"
	"github.com/dmitrijs2005/vpndb/internal/filex"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store is a Repository backed by its own SQLite file.
type Store struct {
	*SQLiteRepository
	db *sql.DB
}

// Open opens (creating if needed) the preference file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbx.SQLiteDSN(path, 0))
	if err != nil {
		return nil, fmt.Errorf("open preferences %s: %w", path, err)
	}
	if err := migrations.Up(ctx, db, migrations.PreferencesDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{SQLiteRepository: NewSQLiteRepository(db), db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
