package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore keeps the journal in process memory. It is the default when no
// database is configured.
type MemStore struct {
	mu      sync.RWMutex
	entries []Entry // oldest first
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// EnsureTable is a no-op for the in-memory store.
func (s *MemStore) EnsureTable(context.Context) error { return nil }

// Append records an entry and links it to the previous one.
func (s *MemStore) Append(_ context.Context, entryType, taskID string, content map[string]any) (*Entry, error) {
	if content == nil {
		content = map[string]any{}
	}
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var prevHash string
	if n := len(s.entries); n > 0 {
		prevHash = s.entries[n-1].Hash
	}
	e := Entry{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      entryType,
		Timestamp: time.Now().Truncate(time.Microsecond),
		TaskID:    taskID,
		Content:   content,
		PrevHash:  prevHash,
	}
	e.Hash = computeHash(prevHash, e.ID, e.Type, e.TaskID, e.Timestamp, contentJSON)
	s.entries = append(s.entries, e)
	return &e, nil
}

// Recent returns up to limit entries, newest first.
func (s *MemStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	return s.filter(limit, func(Entry) bool { return true }), nil
}

// ByType returns up to limit entries of one type, newest first.
func (s *MemStore) ByType(_ context.Context, entryType string, limit int) ([]Entry, error) {
	return s.filter(limit, func(e Entry) bool { return e.Type == entryType }), nil
}

// ByTask returns up to limit entries about one task, newest first.
func (s *MemStore) ByTask(_ context.Context, taskID string, limit int) ([]Entry, error) {
	return s.filter(limit, func(e Entry) bool { return e.TaskID == taskID }), nil
}

// Count returns the number of entries.
func (s *MemStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// VerifyChain recomputes every hash in order.
func (s *MemStore) VerifyChain(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prevHash := ""
	for i, e := range s.entries {
		if e.PrevHash != prevHash {
			return fmt.Errorf("%w: entry %d (%s): prev_hash mismatch", ErrChainBroken, i, e.ID)
		}
		contentJSON, err := json.Marshal(e.Content)
		if err != nil {
			return fmt.Errorf("entry %d (%s): marshal content: %w", i, e.ID, err)
		}
		if want := computeHash(prevHash, e.ID, e.Type, e.TaskID, e.Timestamp, contentJSON); e.Hash != want {
			return fmt.Errorf("%w: entry %d (%s): hash mismatch", ErrChainBroken, i, e.ID)
		}
		prevHash = e.Hash
	}
	return nil
}

func (s *MemStore) filter(limit int, keep func(Entry) bool) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Entry{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if keep(s.entries[i]) {
			out = append(out, s.entries[i])
		}
	}
	return out
}
