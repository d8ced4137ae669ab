package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is a PostgreSQL-backed journal.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureTable creates the journal table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS journal (
			id        TEXT PRIMARY KEY,
			type      TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			task_id   TEXT NOT NULL DEFAULT '',
			content   JSONB NOT NULL DEFAULT '{}',
			hash      TEXT NOT NULL,
			prev_hash TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_journal_type ON journal(type)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_journal_task ON journal(task_id) WHERE task_id != ''`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_journal_timestamp_id ON journal(timestamp, id)`)
	return err
}

// Append stores a new entry, locking the chain head for the duration.
func (s *PgStore) Append(ctx context.Context, entryType, taskID string, content map[string]any) (*Entry, error) {
	if content == nil {
		content = map[string]any{}
	}
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}

	now := time.Now().Truncate(time.Microsecond)
	id := uuid.Must(uuid.NewV7()).String()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	prevHash, err := chainHead(tx.QueryRow(ctx, `SELECT hash FROM journal ORDER BY timestamp DESC, id DESC LIMIT 1 FOR UPDATE`))
	if err != nil {
		return nil, err
	}

	e := &Entry{
		ID:        id,
		Type:      entryType,
		Timestamp: now,
		TaskID:    taskID,
		Content:   content,
		Hash:      computeHash(prevHash, id, entryType, taskID, now, contentJSON),
		PrevHash:  prevHash,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO journal (id, type, timestamp, task_id, content, hash, prev_hash)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`,
		e.ID, e.Type, e.Timestamp, e.TaskID, string(contentJSON), e.Hash, e.PrevHash)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit entry: %w", err)
	}
	return e, nil
}

// chainHead returns the hash of the newest entry, or "" for an empty journal.
func chainHead(row pgx.Row) (string, error) {
	var hash string
	err := row.Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read chain head: %w", err)
	}
	return hash, nil
}

// sqlLimit maps limit to a LIMIT argument; zero or less means no limit, as
// LIMIT NULL does in Postgres.
func sqlLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

// Recent returns the most recent entries, newest first. A limit of zero or
// less returns everything.
func (s *PgStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.scanMany(ctx, `
		SELECT id, type, timestamp, task_id, content, hash, prev_hash
		FROM journal ORDER BY timestamp DESC, id DESC LIMIT $1`, sqlLimit(limit))
}

// ByType returns entries of one type, newest first.
func (s *PgStore) ByType(ctx context.Context, entryType string, limit int) ([]Entry, error) {
	return s.scanMany(ctx, `
		SELECT id, type, timestamp, task_id, content, hash, prev_hash
		FROM journal WHERE type = $1 ORDER BY timestamp DESC, id DESC LIMIT $2`, entryType, sqlLimit(limit))
}

// ByTask returns entries about one task, newest first.
func (s *PgStore) ByTask(ctx context.Context, taskID string, limit int) ([]Entry, error) {
	return s.scanMany(ctx, `
		SELECT id, type, timestamp, task_id, content, hash, prev_hash
		FROM journal WHERE task_id = $1 ORDER BY timestamp DESC, id DESC LIMIT $2`, taskID, sqlLimit(limit))
}

// Count returns the total number of entries.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// VerifyChain walks the journal chronologically and checks every hash.
func (s *PgStore) VerifyChain(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, type, timestamp, task_id, content, hash, prev_hash
		FROM journal ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return fmt.Errorf("verify chain query: %w", err)
	}
	defer rows.Close()

	prevHash := ""
	i := 0
	for rows.Next() {
		var e Entry
		var contentJSON []byte
		if err := rows.Scan(&e.ID, &e.Type, &e.Timestamp, &e.TaskID, &contentJSON, &e.Hash, &e.PrevHash); err != nil {
			return fmt.Errorf("verify chain scan row %d: %w", i, err)
		}
		if e.PrevHash != prevHash {
			return fmt.Errorf("%w: entry %d (%s): prev_hash mismatch", ErrChainBroken, i, e.ID)
		}
		// JSONB normalizes key order and spacing, so hash the re-marshalled form.
		var content map[string]any
		if err := json.Unmarshal(contentJSON, &content); err != nil {
			return fmt.Errorf("entry %d (%s): unmarshal content: %w", i, e.ID, err)
		}
		canonical, _ := json.Marshal(content)
		if want := computeHash(prevHash, e.ID, e.Type, e.TaskID, e.Timestamp, canonical); e.Hash != want {
			return fmt.Errorf("%w: entry %d (%s): hash mismatch", ErrChainBroken, i, e.ID)
		}
		prevHash = e.Hash
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("verify chain rows: %w", err)
	}
	return nil
}

func (s *PgStore) scanMany(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var contentJSON []byte
		if err := rows.Scan(&e.ID, &e.Type, &e.Timestamp, &e.TaskID, &contentJSON, &e.Hash, &e.PrevHash); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(contentJSON, &e.Content); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return entries, nil
}
