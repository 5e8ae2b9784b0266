package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// tickEvent is the payload of one server-sent event on /api/events.
type tickEvent struct {
	Recording bool  `json:"recording"`
	ElapsedMs int64 `json:"elapsed_ms"`
	Blink     bool  `json:"blink"`
}

// handleEvents streams the tick-driven state as server-sent events. The
// blink stream fires once per tick regardless of status, so it paces the
// output; recording state and elapsed time are sampled alongside it.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	blink, cancel := s.tracker.SubscribeBlink()
	defer cancel()

	// Immediate first event so the UI renders without waiting a full tick.
	s.writeTick(w, tickEvent{
		Recording: s.tracker.IsRecording(),
		ElapsedMs: s.tracker.Elapsed(),
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case b, ok := <-blink:
			if !ok {
				return
			}
			s.writeTick(w, tickEvent{
				Recording: s.tracker.IsRecording(),
				ElapsedMs: s.tracker.Elapsed(),
				Blink:     b,
			})
			flusher.Flush()
		}
	}
}

func (s *Server) writeTick(w http.ResponseWriter, event tickEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: tick\ndata: %s\n\n", data)
}
