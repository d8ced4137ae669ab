package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"focusrune/pkg/journal"
)

func (s *Server) handleJournalList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := queryInt(r, "limit", 50)

	if t := r.URL.Query().Get("type"); t != "" {
		entries, err := s.journal.ByType(ctx, t, limit)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, entries)
		return
	}
	if id := r.URL.Query().Get("task"); id != "" {
		entries, err := s.journal.ByTask(ctx, id, limit)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, entries)
		return
	}

	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, entries)
}

func (s *Server) handleJournalVerify(w http.ResponseWriter, r *http.Request) {
	err := s.journal.VerifyChain(r.Context())
	switch {
	case err == nil:
		writeJSON(w, 200, map[string]any{"ok": true})
	case errors.Is(err, journal.ErrChainBroken):
		writeJSON(w, 409, map[string]any{"ok": false, "error": err.Error()})
	default:
		writeError(w, 500, err.Error())
	}
}

// handleTaskStream pushes every store change to the client as a server-sent
// event until the client goes away.
func (s *Server) handleTaskStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, 500, "streaming not supported")
		return
	}

	changes := s.tasks.Subscribe()
	defer s.tasks.Unsubscribe(changes)

	startStream(w, flusher)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			if err := writeEvent(w, ch.Op, ch); err != nil {
				log.Printf("task stream: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}

// handleJournalStream pushes every new journal entry as a server-sent event.
func (s *Server) handleJournalStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, 500, "streaming not supported")
		return
	}

	entries := s.journal.Subscribe()
	defer s.journal.Unsubscribe(entries)

	startStream(w, flusher)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-entries:
			if !ok {
				return
			}
			if err := writeEvent(w, e.Type, e); err != nil {
				log.Printf("journal stream: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}

func startStream(w http.ResponseWriter, flusher http.Flusher) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	flusher.Flush()
}

// writeEvent writes one SSE frame. An error means the client is gone.
func writeEvent(w io.Writer, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}
	return nil
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
