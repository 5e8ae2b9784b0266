package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

// stateResponse is the polling view of the recording state.
type stateResponse struct {
	Recording   bool   `json:"recording"`
	Description string `json:"description"`
	ElapsedMs   int64  `json:"elapsed_ms"`
	Changed     bool   `json:"changed,omitempty"`
}

// descriptionRequest carries a description for start/description endpoints.
type descriptionRequest struct {
	Description string `json:"description"`
}

// dayResponse is one day's grouping with its total.
type dayResponse struct {
	Date         string                      `json:"date"`
	TotalMs      int64                       `json:"total_ms"`
	Descriptions []string                    `json:"descriptions"`
	Activities   map[string][]model.Activity `json:"activities"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) state(changed bool) stateResponse {
	event := s.tracker.LastEvent()
	return stateResponse{
		Recording:   event.Status == model.StatusRecording,
		Description: event.Description,
		ElapsedMs:   s.tracker.Elapsed(),
		Changed:     changed,
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state(false))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength != 0 {
		var req descriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		s.tracker.SetDescription(req.Description)
	}
	changed := s.tracker.Start()
	writeJSON(w, http.StatusOK, s.state(changed))
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	changed := s.tracker.Pause()
	writeJSON(w, http.StatusOK, s.state(changed))
}

func (s *Server) handleDescription(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.tracker.SetDescription(req.Description)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Activities())
}

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	var activity model.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if activity.UID == "" {
		activity.UID = timecalc.NewID()
	}
	s.tracker.AddActivity(activity)
	writeJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	s.tracker.DeleteAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	// Deleting an unknown id is a no-op by contract, so this always succeeds.
	s.tracker.DeleteActivity(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDescriptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Descriptions())
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	days := s.tracker.ActivitiesByDay()
	out := make([]dayResponse, 0, len(days))
	for _, day := range days {
		out = append(out, dayResponse{
			Date:         timecalc.DayKey(day.Date),
			TotalMs:      day.TotalTime(),
			Descriptions: day.Descriptions,
			Activities:   day.Activities,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteDay(w http.ResponseWriter, r *http.Request) {
	date, err := timecalc.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if description := r.URL.Query().Get("description"); description != "" {
		s.tracker.DeleteDescriptionsInADay(date, description)
	} else {
		s.tracker.DeleteAllInADay(date)
	}
	w.WriteHeader(http.StatusNoContent)
}
