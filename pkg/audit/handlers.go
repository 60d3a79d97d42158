package audit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Router serves the moderation history. Mount it under /api/v1/history.
func Router(store *Store) chi.Router {
	r := chi.NewRouter()
	r.Get("/", ListEventsHandler(store))
	r.Get("/{eventId}", GetEventHandler(store))
	return r
}

// ListEventsHandler handles GET /history.
// Query params: section, recordId, actor, outcome, pageSize, pageToken
func ListEventsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{
			Section:  q.Get("section"),
			RecordID: q.Get("recordId"),
			Actor:    q.Get("actor"),
			Outcome:  q.Get("outcome"),
		}

		pageSize := defaultPageSize
		if ps := q.Get("pageSize"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 {
				pageSize = v
			}
		}

		events, nextToken, total, err := store.List(filter, pageSize, q.Get("pageToken"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("failed to list moderation history: %v", err))
			return
		}

		items := make([]EventResponse, len(events))
		for i, ev := range events {
			items[i] = ToResponse(ev)
		}

		writeJSON(w, http.StatusOK, ListResponse{
			Events:        items,
			NextPageToken: nextToken,
			TotalSize:     total,
		})
	}
}

// GetEventHandler handles GET /history/{eventId}.
func GetEventHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventId")
		ev, err := store.GetByID(eventID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", fmt.Sprintf("failed to get moderation event: %v", err))
			return
		}
		if ev == nil {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("moderation event %q not found", eventID))
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(*ev))
	}
}

// EventResponse is the API form of an Event.
type EventResponse struct {
	ID        string `json:"id" yaml:"id"`
	Section   string `json:"section" yaml:"section"`
	RecordID  string `json:"recordId" yaml:"recordId"`
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Actor     string `json:"actor" yaml:"actor"`
	Outcome   string `json:"outcome" yaml:"outcome"`
	Code      string `json:"code,omitempty" yaml:"code,omitempty"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Changed   bool   `json:"changed" yaml:"changed"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// ListResponse is the body of GET /history.
type ListResponse struct {
	Events        []EventResponse `json:"events" yaml:"events"`
	NextPageToken string          `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
	TotalSize     int             `json:"totalSize" yaml:"totalSize"`
}

// ToResponse converts a stored event.
func ToResponse(ev Event) EventResponse {
	return EventResponse{
		ID:        ev.ID,
		Section:   ev.Section,
		RecordID:  ev.RecordID,
		From:      ev.From,
		To:        ev.To,
		Actor:     ev.Actor,
		Outcome:   ev.Outcome,
		Code:      ev.Code,
		Reason:    ev.Reason,
		Changed:   ev.Changed,
		CreatedAt: ev.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}
