package repository

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Repository wraps the local sqlite file that holds per-(hotel, period)
// draft shift sets. Only drafts live here: the upstream hotel backend is
// the system of record for everything published.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Open opens (and creates, if needed) the draft database at path and
// ensures the schema exists.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS draft_shifts (
		hotel     TEXT    NOT NULL,
		period_id INTEGER NOT NULL,
		shift_id  TEXT    NOT NULL,
		is_copied INTEGER NOT NULL DEFAULT 0,
		payload   TEXT    NOT NULL,
		PRIMARY KEY (hotel, period_id, shift_id)
	);`

	_, err := db.Exec(schema)
	return err
}
