// Package journal is an append-only, hash-chained activity log of task store
// changes. It is an audit trail only; nothing reads it back into the store.
package journal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrChainBroken is returned by VerifyChain when an entry's hash does not
// match its contents or predecessor.
var ErrChainBroken = errors.New("journal chain broken")

// Entry is one recorded change.
type Entry struct {
	ID        string         `json:"id"`        // UUID v7 (time-ordered)
	Type      string         `json:"type"`      // e.g. "task.added", "history.undo"
	Timestamp time.Time      `json:"timestamp"` // when the change was recorded
	TaskID    string         `json:"task_id"`   // empty for history ops
	Content   map[string]any `json:"content"`   // change details
	Hash      string         `json:"hash"`      // SHA-256 over the canonical form
	PrevHash  string         `json:"prev_hash"` // hash chain link
}

// Store is the contract for journal persistence. Query limits of zero or
// less mean no limit.
type Store interface {
	Append(ctx context.Context, entryType, taskID string, content map[string]any) (*Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
	ByType(ctx context.Context, entryType string, limit int) ([]Entry, error)
	ByTask(ctx context.Context, taskID string, limit int) ([]Entry, error)
	Count(ctx context.Context) (int, error)
	VerifyChain(ctx context.Context) error
	EnsureTable(ctx context.Context) error
}

func computeHash(prevHash, id, entryType, taskID string, ts time.Time, content []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|", prevHash, id, entryType, taskID, ts.UTC().Format(time.RFC3339Nano))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
