package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/cache"
	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/lifecycle"
	"github.com/minely/moderator/pkg/presentation"
	"github.com/minely/moderator/pkg/records"
)

const maxStatusBodySize = 64 << 10

// ListResponse is the body of a section list.
type ListResponse[T any] struct {
	Items      []T                   `json:"items"`
	Size       int                   `json:"size"`
	Filter     string                `json:"filter"`
	EmptyState *dashboard.EmptyState `json:"emptyState,omitempty"`
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) mountAPI(r chi.Router) {
	b := s.board

	r.Route("/checklists", func(r chi.Router) {
		r.Use(s.cache.Section(dashboard.SectionChecklists))
		r.Get("/", listHandler(b.Checklists))
		r.Get("/{id}", getHandler(b.Checklists))
	})
	r.Route("/users", func(r chi.Router) {
		r.Use(s.cache.Section(dashboard.SectionUsers))
		r.Get("/", listHandler(b.Users))
		r.Get("/{id}", getHandler(b.Users))
	})
	r.Route("/reports", func(r chi.Router) {
		r.With(s.cache.Section(dashboard.SectionReports)).Get("/", listHandler(b.Reports.Section))
		r.With(s.cache.Section(dashboard.SectionReports)).Get("/{id}", getHandler(b.Reports.Section))
		r.Post("/{id}/status", statusHandler(b.Reports))
	})
	r.Route("/videos", func(r chi.Router) {
		r.With(s.cache.Section(dashboard.SectionVideos)).Get("/", listHandler(b.Videos.Section))
		r.With(s.cache.Section(dashboard.SectionVideos)).Get("/{id}", getHandler(b.Videos.Section))
		r.Post("/{id}/status", statusHandler(b.Videos))
	})

	r.With(s.cache.Section(cache.TagStats)).Get("/stats", s.statsHandler)
	r.With(s.cache.Section(cache.TagStats)).Get("/overview", s.overviewHandler)
	r.Get("/navigation", navigationHandler)
	r.Get("/presentation", presentationHandler)

	if s.history != nil {
		r.Mount("/history", audit.Router(s.history))
	}
}

// listHandler handles GET /{section}?filter=.
func listHandler[T records.Record](sec *dashboard.Section[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		if filter == "" {
			filter = dashboard.FilterAll
		}
		items := sec.FilterBy(filter)
		resp := ListResponse[T]{Items: items, Size: len(items), Filter: filter}
		if len(items) == 0 {
			empty := sec.EmptyState(filter)
			resp.EmptyState = &empty
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// getHandler handles GET /{section}/{id}.
func getHandler[T records.Record](sec *dashboard.Section[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, ok := sec.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("%s %q not found", sec.Name(), id))
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// statusHandler handles POST /{section}/{id}/status.
func statusHandler[T records.Record, S ~string](sec *dashboard.StatusSection[T, S]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req StatusRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxStatusBodySize)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
			return
		}

		rec, found, err := sec.SetStatusString(r.Context(), id, req.Status, actorFrom(r), req.Reason)
		if !found {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("%s %q not found", sec.Name(), id))
			return
		}
		if err != nil {
			var te *lifecycle.TransitionError
			if errors.As(err, &te) {
				writeJSON(w, http.StatusBadRequest, te)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Stats())
}

func (s *Server) overviewHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Overview())
}

func navigationHandler(w http.ResponseWriter, r *http.Request) {
	active := dashboard.ParseTab(r.URL.Query().Get("active"))
	writeJSON(w, http.StatusOK, map[string]any{"items": dashboard.Navigation(active)})
}

func presentationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tables":  presentation.Tables(),
		"neutral": presentation.Neutral,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}
