// Package category keeps the user's task categories: named, coloured labels
// that can be renamed, searched and reordered. Categories are not part of
// the undo history.
package category

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNameRequired = errors.New("category name required")
	ErrNotFound     = errors.New("category not found")
	ErrOutOfRange   = errors.New("category index out of range")
)

// Category is a named colour label.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Store is the contract for category persistence.
type Store interface {
	Add(ctx context.Context, name string) (*Category, error)
	Rename(ctx context.Context, id, name string) (*Category, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, from, to int) error
	List(ctx context.Context) ([]Category, error)
	Search(ctx context.Context, query string) ([]Category, error)
}

// MemStore is an ordered in-memory Store.
type MemStore struct {
	mu    sync.RWMutex
	cats  []Category
	color func() string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{color: RandomColor}
}

// Add appends a category with a random pastel colour.
func (s *MemStore) Add(_ context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	c := Category{
		ID:    uuid.Must(uuid.NewV7()).String(),
		Name:  name,
		Color: s.color(),
	}
	s.mu.Lock()
	s.cats = append(s.cats, c)
	s.mu.Unlock()
	return &c, nil
}

// Rename changes a category's name. A blank name keeps the old one.
func (s *MemStore) Rename(_ context.Context, id, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, fmt.Errorf("rename %s: %w", id, ErrNotFound)
	}
	if name = strings.TrimSpace(name); name != "" {
		s.cats[i].Name = name
	}
	c := s.cats[i]
	return &c, nil
}

// Delete removes a category.
func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	s.cats = slices.Delete(s.cats, i, i+1)
	return nil
}

// Reorder moves the category at from to to.
func (s *MemStore) Reorder(_ context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.cats)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d -> %d with %d categories", ErrOutOfRange, from, to, n)
	}
	moved := s.cats[from]
	s.cats = slices.Delete(s.cats, from, from+1)
	s.cats = slices.Insert(s.cats, to, moved)
	return nil
}

// List returns all categories in display order.
func (s *MemStore) List(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cats), nil
}

// Search returns categories whose name contains query, ignoring case.
func (s *MemStore) Search(_ context.Context, query string) ([]Category, error) {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Category{}
	for _, c := range s.cats {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemStore) index(id string) int {
	return slices.IndexFunc(s.cats, func(c Category) bool { return c.ID == id })
}

// RandomColor returns a pastel CSS colour, hsl(H, 70%, 70%).
func RandomColor() string {
	return fmt.Sprintf("hsl(%d, 70%%, 70%%)", rand.IntN(360))
}

// Hue extracts H from a colour produced by RandomColor.
func Hue(color string) (int, bool) {
	var h int
	if _, err := fmt.Sscanf(color, "hsl(%d,", &h); err != nil {
		return 0, false
	}
	return h, true
}
