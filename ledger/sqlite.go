package ledger

import (
	"errors"
	"fmt"
	"os"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"dailysent/stage"
)

const schema = `CREATE TABLE IF NOT EXISTS used (
	hash      TEXT PRIMARY KEY,
	published TEXT NOT NULL
);`

// sqliteStore keeps keys in SQLite database together with publication date.
// Database is only opened for writing at commit time, missing database is
// an empty ledger.
type sqliteStore struct {
	path string
}

func (s *sqliteStore) String() string {
	return s.path
}

func (s *sqliteStore) load() ([]string, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	conn, err := sqlite.OpenConn(s.path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to open ledger %s: %w", s.path, err)
	}
	defer conn.Close()

	var keys []string
	err = sqlitex.Execute(conn, `SELECT hash FROM used ORDER BY published, rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			keys = append(keys, stmt.ColumnText(0))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to read ledger %s: %w", s.path, err)
	}
	return keys, nil
}

func (s *sqliteStore) stage(b *stage.Batch, date time.Time, added, _ []string) error {
	if len(added) == 0 {
		return nil
	}
	published := date.Format(time.DateOnly)
	b.Defer("update ledger "+s.path, func() error {
		return s.insert(published, added)
	})
	return nil
}

func (s *sqliteStore) insert(published string, keys []string) (err error) {
	conn, err := sqlite.OpenConn(s.path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("unable to open ledger %s: %w", s.path, err)
	}
	defer func() {
		if e := conn.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("unable to prepare ledger schema: %w", err)
	}

	defer sqlitex.Transaction(conn)(&err)
	for _, k := range keys {
		err = sqlitex.Execute(conn, `INSERT OR IGNORE INTO used (hash, published) VALUES (?, ?)`,
			&sqlitex.ExecOptions{Args: []any{k, published}})
		if err != nil {
			return fmt.Errorf("unable to record %s in ledger: %w", k, err)
		}
	}
	return nil
}

func (s *sqliteStore) close() error {
	return nil
}
