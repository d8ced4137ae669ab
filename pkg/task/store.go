package task

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned by Reorder when either index falls outside
// the current list. Nothing is committed in that case.
var ErrIndexOutOfRange = errors.New("reorder index out of range")

// Change ops published to subscribers.
const (
	OpAdded     = "task.added"
	OpEdited    = "task.edited"
	OpDeleted   = "task.deleted"
	OpToggled   = "task.toggled"
	OpReordered = "task.reordered"
	OpUndo      = "history.undo"
	OpRedo      = "history.redo"
)

// Welcome is the task every new store starts with.
var Welcome = Task{ID: "1", Title: "Welcome to FocusRune"}

// State is what views render: the current list plus history depth.
type State struct {
	Tasks  []Task `json:"tasks"`
	Past   int    `json:"past"`
	Future int    `json:"future"`
}

// Change is sent to subscribers after every commit, undo and redo.
type Change struct {
	Op     string `json:"op"`
	TaskID string `json:"task_id,omitempty"`
	From   int    `json:"from,omitempty"`
	To     int    `json:"to,omitempty"`
	State  State  `json:"state"`
}

// Store owns the ordered task list and its linear undo/redo history.
//
// Snapshots are immutable once installed: every mutation builds a fresh
// slice, so past, current and future can share backing arrays freely.
type Store struct {
	mu      sync.Mutex
	current []Task
	past    [][]Task // oldest first
	future  [][]Task // next redo last
	limit   int
	buf     int
	newID   func() string

	subMu     sync.RWMutex
	subs      map[chan Change]struct{}
	followers map[chan Change]*follower
}

// Option configures a Store.
type Option func(*Store)

// WithSeed replaces the initial list.
func WithSeed(tasks []Task) Option {
	return func(s *Store) { s.current = slices.Clone(tasks) }
}

// WithIDFunc replaces the ID generator used by Add.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithHistoryLimit caps the undo stack; the oldest snapshots are dropped
// first. Zero or less means unbounded.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.limit = n }
}

// WithSubscriberBuffer sets the channel capacity handed out by Subscribe.
// A subscriber that falls further behind misses changes.
func WithSubscriberBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.buf = n
		}
	}
}

// NewStore creates a Store seeded with the welcome task.
func NewStore(opts ...Option) *Store {
	s := &Store{
		current:   []Task{Welcome},
		buf:       64,
		newID:     func() string { return uuid.Must(uuid.NewV7()).String() },
		subs:      make(map[chan Change]struct{}),
		followers: make(map[chan Change]*follower),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new, incomplete task built from p and returns it.
func (s *Store) Add(p Payload) Task {
	s.mu.Lock()
	t := Task{
		ID:        s.newID(),
		Title:     p.Title,
		Priority:  p.Priority,
		DueDate:   p.DueDate,
		Recurring: p.Recurring,
	}
	next := make([]Task, len(s.current), len(s.current)+1)
	copy(next, s.current)
	next = append(next, t)
	ch := s.commit(next, Change{Op: OpAdded, TaskID: t.ID})
	s.mu.Unlock()

	s.publish(ch)
	return t
}

// Edit applies p to the task with the given id. An unknown id still commits
// an unchanged snapshot.
func (s *Store) Edit(id string, p Patch) {
	s.mutate(OpEdited, id, func(t Task) Task { return p.apply(t) })
}

// Toggle flips Completed on the task with the given id. An unknown id still
// commits an unchanged snapshot.
func (s *Store) Toggle(id string) {
	s.mutate(OpToggled, id, func(t Task) Task {
		t.Completed = !t.Completed
		return t
	})
}

// Delete removes the task with the given id. An unknown id still commits an
// unchanged snapshot.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	next := make([]Task, 0, len(s.current))
	for _, t := range s.current {
		if t.ID != id {
			next = append(next, t)
		}
	}
	ch := s.commit(next, Change{Op: OpDeleted, TaskID: id})
	s.mu.Unlock()

	s.publish(ch)
}

// Reorder moves the task at index from to index to.
func (s *Store) Reorder(from, to int) error {
	s.mu.Lock()
	n := len(s.current)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d -> %d with %d tasks", ErrIndexOutOfRange, from, to, n)
	}
	next := slices.Clone(s.current)
	moved := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, moved)
	ch := s.commit(next, Change{Op: OpReordered, TaskID: moved.ID, From: from, To: to})
	s.mu.Unlock()

	s.publish(ch)
	return nil
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	if len(s.past) == 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, s.current)
	s.current = prev
	ch := Change{Op: OpUndo, State: s.stateLocked()}
	s.mu.Unlock()

	s.publish(ch)
	return true
}

// Redo reinstalls the most recently undone snapshot. It reports false when
// there is nothing to redo.
func (s *Store) Redo() bool {
	s.mu.Lock()
	if len(s.future) == 0 {
		s.mu.Unlock()
		return false
	}
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, s.current)
	s.current = next
	ch := Change{Op: OpRedo, State: s.stateLocked()}
	s.mu.Unlock()

	s.publish(ch)
	return true
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.current)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.current {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Len returns the number of tasks in the current list.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current)
}

// State returns the current list and history depth.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Past returns the undo stack, oldest first.
func (s *Store) Past() [][]Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHistory(s.past, false)
}

// Future returns the redo stack, next redo first.
func (s *Store) Future() [][]Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHistory(s.future, true)
}

// CanUndo reports whether Undo would do anything.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo reports whether Redo would do anything.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// Subscribe returns a buffered channel that receives every Change. A reader
// that lets the buffer fill misses changes until it catches up; use Follow
// when that is not acceptable.
func (s *Store) Subscribe() chan Change {
	ch := make(chan Change, s.buf)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber or follower and closes its channel.
// Changes a follower has not read yet are discarded.
func (s *Store) Unsubscribe(ch chan Change) {
	s.subMu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	if f, ok := s.followers[ch]; ok {
		delete(s.followers, ch)
		close(f.done)
	}
	s.subMu.Unlock()
}

func (s *Store) mutate(op, id string, f func(Task) Task) {
	s.mu.Lock()
	next := make([]Task, len(s.current))
	for i, t := range s.current {
		if t.ID == id {
			t = f(t)
		}
		next[i] = t
	}
	ch := s.commit(next, Change{Op: op, TaskID: id})
	s.mu.Unlock()

	s.publish(ch)
}

// commit pushes the pre-mutation list onto past, installs next and discards
// the redo branch. Callers hold mu.
func (s *Store) commit(next []Task, ch Change) Change {
	s.past = append(s.past, s.current)
	if s.limit > 0 && len(s.past) > s.limit {
		s.past = slices.Delete(s.past, 0, len(s.past)-s.limit)
	}
	s.current = next
	s.future = nil
	ch.State = s.stateLocked()
	return ch
}

func (s *Store) stateLocked() State {
	return State{
		Tasks:  slices.Clone(s.current),
		Past:   len(s.past),
		Future: len(s.future),
	}
}

func (s *Store) publish(ch Change) {
	s.subMu.RLock()
	for sub := range s.subs {
		select {
		case sub <- ch:
		default:
			// subscriber is behind; drop rather than stall the UI thread
		}
	}
	for _, f := range s.followers {
		f.push(ch)
	}
	s.subMu.RUnlock()
}

func cloneHistory(h [][]Task, reverse bool) [][]Task {
	out := make([][]Task, len(h))
	for i, snap := range h {
		j := i
		if reverse {
			j = len(h) - 1 - i
		}
		out[j] = slices.Clone(snap)
	}
	return out
}
