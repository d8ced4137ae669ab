package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBindings(t *testing.T) {
	k := Default()
	cases := []struct {
		chord Chord
		want  Action
	}{
		{Chord{Key: "k", Shortcut: true}, TogglePalette},
		{Chord{Key: "Z", Shortcut: true}, Undo},
		{Chord{Key: "z", Shortcut: true, Shift: true}, Redo},
		{Chord{Key: "a", Shortcut: true}, SelectAll},
	}
	for _, tc := range cases {
		t.Run(tc.chord.String(), func(t *testing.T) {
			got, ok := k.Lookup(tc.chord)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUnboundChords(t *testing.T) {
	k := Default()
	for _, c := range []Chord{
		{Key: "K"},
		{Key: "Z", Shift: true},
		{Key: "Q", Shortcut: true},
	} {
		_, ok := k.Lookup(c)
		assert.False(t, ok, c.String())
	}
}

func TestDispatch(t *testing.T) {
	k := Default()
	var calls []Action
	h := Handlers{
		Undo: func() { calls = append(calls, Undo) },
		Redo: func() { calls = append(calls, Redo) },
	}

	assert.True(t, k.Dispatch(Chord{Key: "z", Shortcut: true}, h))
	assert.True(t, k.Dispatch(Chord{Key: "z", Shortcut: true, Shift: true}, h))
	assert.False(t, k.Dispatch(Chord{Key: "k", Shortcut: true}, h), "no handler bound for palette")
	assert.False(t, k.Dispatch(Chord{Key: "x"}, h))
	assert.Equal(t, []Action{Undo, Redo}, calls)
}

func TestBindOverrides(t *testing.T) {
	k := &Keymap{}
	k.Bind(Chord{Key: "p", Shortcut: true}, TogglePalette)
	k.Bind(Chord{Key: "P", Shortcut: true}, SelectAll)
	got, _ := k.Lookup(Chord{Key: "p", Shortcut: true})
	assert.Equal(t, SelectAll, got)
}

func TestKeysAndHelp(t *testing.T) {
	k := Default()
	assert.Equal(t, []string{"A", "K", "Z"}, k.Keys())
	assert.Len(t, k.Help(), 4)
	assert.Equal(t, "Mod+Shift+Z", Chord{Key: "z", Shortcut: true, Shift: true}.String())
}
