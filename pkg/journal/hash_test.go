package journal

import (
	"encoding/json"
	"testing"
	"time"
)

func TestComputeHash(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	content, _ := json.Marshal(map[string]any{"title": "Buy milk"})

	h1 := computeHash("", "id1", "task.added", "t1", now, content)
	h2 := computeHash("", "id1", "task.added", "t1", now, content)
	if h1 != h2 {
		t.Fatalf("same inputs should produce same hash: %s != %s", h1, h2)
	}

	if h3 := computeHash("", "id2", "task.added", "t1", now, content); h1 == h3 {
		t.Fatalf("different ID should produce different hash")
	}
	if h4 := computeHash("prevhash", "id1", "task.added", "t1", now, content); h1 == h4 {
		t.Fatalf("different prevHash should produce different hash")
	}
	if h5 := computeHash("", "id1", "task.added", "t2", now, content); h1 == h5 {
		t.Fatalf("different task should produce different hash")
	}
}

func TestComputeHashZoneIndependent(t *testing.T) {
	utc := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("X", 3*3600))
	content, _ := json.Marshal(map[string]any{"a": 1, "b": 2})

	if computeHash("", "id", "type", "", utc, content) != computeHash("", "id", "type", "", local, content) {
		t.Fatalf("the same instant in another zone should hash the same")
	}
}
