package persist

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLite is the file-backed KV used in production. One row per (session, key);
// writes are full-value upserts, matching the replace-on-write semantics of
// local storage.
type SQLite struct{ db *sqlx.DB }

func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	schema := `
CREATE TABLE IF NOT EXISTS kv(
  session_id TEXT NOT NULL,
  key        TEXT NOT NULL,
  value      TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(session_id, key)
);
CREATE INDEX IF NOT EXISTS idx_kv_session ON kv(session_id);
`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(sessionID, key string) (string, bool, error) {
	var v string
	err := s.db.Get(&v, `SELECT value FROM kv WHERE session_id = ? AND key = ?`, sessionID, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLite) Set(sessionID, key, value string) error {
	_, err := s.db.Exec(`
	  INSERT INTO kv(session_id, key, value, updated_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(session_id, key) DO UPDATE
	  SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, sessionID, key, value)
	return err
}

func (s *SQLite) Delete(sessionID, key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE session_id = ? AND key = ?`, sessionID, key)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }
