// Package shortcut maps global key chords to application actions.
package shortcut

import (
	"fmt"
	"sort"
	"strings"
)

// Action is something a chord can trigger.
type Action string

const (
	TogglePalette Action = "palette.toggle"
	Undo          Action = "history.undo"
	Redo          Action = "history.redo"
	SelectAll     Action = "selection.all"
)

// Chord is a key press with its modifiers. Shortcut is the platform command
// modifier: Ctrl on Linux and Windows, Cmd on macOS.
type Chord struct {
	Key      string
	Shortcut bool
	Shift    bool
}

func (c Chord) normalize() Chord {
	c.Key = strings.ToUpper(c.Key)
	return c
}

// String renders the chord the way menus show it, e.g. "Mod+Shift+Z".
func (c Chord) String() string {
	var parts []string
	if c.Shortcut {
		parts = append(parts, "Mod")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	parts = append(parts, strings.ToUpper(c.Key))
	return strings.Join(parts, "+")
}

// Handlers binds actions to the functions that perform them.
type Handlers map[Action]func()

// Keymap is the dispatch table from chords to actions.
type Keymap struct {
	bindings map[Chord]Action
}

// Default returns the application's keymap: palette, undo, redo and
// select-all.
func Default() *Keymap {
	k := &Keymap{bindings: make(map[Chord]Action)}
	k.Bind(Chord{Key: "K", Shortcut: true}, TogglePalette)
	k.Bind(Chord{Key: "Z", Shortcut: true}, Undo)
	k.Bind(Chord{Key: "Z", Shortcut: true, Shift: true}, Redo)
	k.Bind(Chord{Key: "A", Shortcut: true}, SelectAll)
	return k
}

// Bind maps c to a, replacing any earlier binding.
func (k *Keymap) Bind(c Chord, a Action) {
	if k.bindings == nil {
		k.bindings = make(map[Chord]Action)
	}
	k.bindings[c.normalize()] = a
}

// Lookup returns the action bound to c.
func (k *Keymap) Lookup(c Chord) (Action, bool) {
	a, ok := k.bindings[c.normalize()]
	return a, ok
}

// Dispatch runs the handler for c's action. It reports whether a handler
// ran, so callers know to swallow the key event.
func (k *Keymap) Dispatch(c Chord, h Handlers) bool {
	a, ok := k.Lookup(c)
	if !ok {
		return false
	}
	fn := h[a]
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Keys returns the distinct key names that have a binding, sorted.
func (k *Keymap) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for c := range k.bindings {
		if !seen[c.Key] {
			seen[c.Key] = true
			keys = append(keys, c.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Help lists each binding as "chord  action", sorted by chord.
func (k *Keymap) Help() []string {
	lines := make([]string, 0, len(k.bindings))
	for c, a := range k.bindings {
		lines = append(lines, fmt.Sprintf("%-14s %s", c, a))
	}
	sort.Strings(lines)
	return lines
}
