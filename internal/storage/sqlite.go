package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/duetrack/duetrack/internal/logging"
	"github.com/duetrack/duetrack/internal/model"
)

// sqliteFileName is the database file under the data directory.
const sqliteFileName = "deadlines.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS homeworks (
    uid TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    due_text TEXT NOT NULL,
    difficulty INTEGER NOT NULL,
    progress INTEGER NOT NULL,
    tags_json TEXT NOT NULL,
    milestones_json TEXT NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    schema_version INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_homeworks_due_text ON homeworks(due_text);
CREATE INDEX IF NOT EXISTS idx_homeworks_updated_at ON homeworks(updated_at);
CREATE INDEX IF NOT EXISTS idx_homeworks_deleted ON homeworks(deleted);
`

const recordColumns = `uid, name, due_text, difficulty, progress, tags_json, milestones_json, deleted, created_at, updated_at, schema_version`

// SQLiteRepo is the durable backend: one indexed table keyed by uid, with
// tags and milestones stored as JSON text blobs opaque to the engine. All
// multi-statement mutations run inside a transaction, so a failure mid-write
// rolls back to the prior consistent state. A single connection plus an
// exclusive lock serializes logical operations; cross-process access relies
// on SQLite's own locking and is assumed not to happen.
type SQLiteRepo struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteRepo opens or creates the database under dir and applies the
// schema. WAL journaling is enabled best-effort for crash resilience.
func NewSQLiteRepo(dir string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create dir %s: %v", ErrUnavailable, dir, err)
	}
	path := filepath.Join(dir, sqliteFileName)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	// One connection: the repo serializes logical operations itself and a
	// single writer avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connect %s: %v", ErrUnavailable, path, err)
	}
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode = WAL").Scan(&journalMode); err != nil {
		logging.Logger().Debug("could not enable WAL journaling", "path", path, "error", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", ErrSQL, err)
	}
	return &SQLiteRepo{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// scanRecord reads one row into a record. Malformed blob columns decode to
// empty collections rather than failing the whole read.
func scanRecord(row interface{ Scan(...any) error }) (*model.HomeworkRecord, error) {
	var rec model.HomeworkRecord
	var tagsJSON, milestonesJSON string
	var deleted int64
	err := row.Scan(
		&rec.UID, &rec.Name, &rec.DueText, &rec.Difficulty, &rec.Progress,
		&tagsJSON, &milestonesJSON, &deleted, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.SchemaVersion,
	)
	if err != nil {
		return nil, err
	}
	rec.Deleted = deleted != 0
	rec.Tags = []string{}
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		logging.Logger().Warn("malformed tags column, treating as empty", "uid", rec.UID, "error", err)
		rec.Tags = []string{}
	}
	rec.Milestones = []model.Milestone{}
	if err := json.Unmarshal([]byte(milestonesJSON), &rec.Milestones); err != nil {
		logging.Logger().Warn("malformed milestones column, treating as empty", "uid", rec.UID, "error", err)
		rec.Milestones = []model.Milestone{}
	}
	return &rec, nil
}

// blobColumns encodes the tags and milestones blob columns.
func blobColumns(rec *model.HomeworkRecord) (string, string, error) {
	tagsJSON, err := json.Marshal(rec.Tags)
	if err != nil {
		return "", "", fmt.Errorf("%w: encode tags: %v", ErrSerde, err)
	}
	milestonesJSON, err := json.Marshal(rec.Milestones)
	if err != nil {
		return "", "", fmt.Errorf("%w: encode milestones: %v", ErrSerde, err)
	}
	return string(tagsJSON), string(milestonesJSON), nil
}

// List returns non-deleted records sorted ascending by due text.
func (r *SQLiteRepo) List() ([]model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(
		"SELECT " + recordColumns + " FROM homeworks WHERE deleted = 0 ORDER BY due_text ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrSQL, err)
	}
	defer rows.Close()

	out := []model.HomeworkRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrSQL, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrSQL, err)
	}
	return out, nil
}

// Get returns the record for uid, soft-deleted or not.
func (r *SQLiteRepo) Get(uid string) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(uid)
}

// get runs the lookup without taking the lock. Callers must hold r.mu.
func (r *SQLiteRepo) get(uid string) (*model.HomeworkRecord, error) {
	row := r.db.QueryRow(
		"SELECT "+recordColumns+" FROM homeworks WHERE uid = ?", uid)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrSQL, uid, err)
	}
	return rec, nil
}

// Create inserts a freshly stamped record inside a transaction. The uid
// primary key makes a duplicate insert fail; uid generation guarantees
// practical uniqueness.
func (r *SQLiteRepo) Create(payload model.NewHomework) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := newRecord(payload, nowUnix())
	tagsJSON, milestonesJSON, err := blobColumns(&rec)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrSQL, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO homeworks (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		rec.UID, rec.Name, rec.DueText, rec.Difficulty, rec.Progress,
		tagsJSON, milestonesJSON, rec.CreatedAt, rec.UpdatedAt, rec.SchemaVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert: %v", ErrSQL, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrSQL, err)
	}
	return &rec, nil
}

// Update replaces all fields of an existing record by uid. A zero affected
// row count means the uid never existed.
func (r *SQLiteRepo) Update(rec model.HomeworkRecord) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(rec)
}

// update runs the full replace without taking the lock. Callers must hold r.mu.
func (r *SQLiteRepo) update(rec model.HomeworkRecord) (*model.HomeworkRecord, error) {
	rec.UpdatedAt = nowUnix()
	tagsJSON, milestonesJSON, err := blobColumns(&rec)
	if err != nil {
		return nil, err
	}

	deleted := 0
	if rec.Deleted {
		deleted = 1
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrSQL, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE homeworks SET
		 name = ?, due_text = ?, difficulty = ?, progress = ?,
		 tags_json = ?, milestones_json = ?, deleted = ?,
		 updated_at = ?, schema_version = ?
		 WHERE uid = ?`,
		rec.Name, rec.DueText, rec.Difficulty, rec.Progress,
		tagsJSON, milestonesJSON, deleted,
		rec.UpdatedAt, rec.SchemaVersion, rec.UID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: update: %v", ErrSQL, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: rows affected: %v", ErrSQL, err)
	}
	if changed == 0 {
		return nil, ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrSQL, err)
	}
	return &rec, nil
}

// Patch loads the record, merges the present fields, and writes the result
// back as a full update. Not atomic against concurrent writers from other
// processes; this system assumes single-process ownership of the file.
func (r *SQLiteRepo) Patch(uid string, p model.Patch) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.get(uid)
	if err != nil {
		return nil, err
	}
	current.ApplyPatch(p, nowUnix())
	return r.update(*current)
}

// Delete soft-deletes the record inside a transaction.
func (r *SQLiteRepo) Delete(uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrSQL, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE homeworks SET deleted = 1, updated_at = ? WHERE uid = ?",
		nowUnix(), uid,
	)
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrSQL, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrSQL, err)
	}
	if changed == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrSQL, err)
	}
	return nil
}
