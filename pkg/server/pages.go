package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/lifecycle"
	"github.com/minely/moderator/pkg/presentation"
	"github.com/minely/moderator/pkg/records"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	appName     = "MineLy"
	appSubtitle = "Moderator Panel"
	headerTitle = "Mining Safety Control Center"
)

// Badge is a rendered enum value.
type Badge struct {
	Text  string
	Class string
	Icon  string
}

// FilterOption is one entry of a section's filter selector.
type FilterOption struct {
	Key    string
	Label  string
	Active bool
}

// ActionButton is a status change offered for a record.
type ActionButton struct {
	To    string
	Label string
}

// Row pairs a record with the status changes it offers.
type Row[T any] struct {
	Record  T
	Actions []ActionButton
}

// SectionView is the shared part of every section page.
type SectionView struct {
	Meta    dashboard.SectionMeta
	State   dashboard.State
	Options []FilterOption
	Empty   *dashboard.EmptyState
}

// Page is the data handed to the page templates.
type Page struct {
	AppName     string
	AppSubtitle string
	Header      string
	Tab         dashboard.Tab
	Nav         []dashboard.NavItem
	Error       string
	Now         time.Time

	Overview dashboard.Overview
	Stats    dashboard.Stats
	Section  SectionView

	Checklists []records.Checklist
	Reports    []Row[records.Report]
	Users      []records.User
	Videos     []Row[records.Video]

	SelectedChecklist *records.Checklist
	SelectedReport    *Row[records.Report]
	SelectedUser      *records.User
	SelectedVideo     *Row[records.Video]
}

// sectionControl is the UI state surface shared by every section.
type sectionControl interface {
	SetFilter(key string)
	Select(id string) bool
	Deselect()
	OpenCreate()
	CloseCreate()
}

type statusSetter func(ctx context.Context, id, to, actor, reason string) (bool, error)

func parsePages() (*template.Template, error) {
	return template.New("pages").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"badge": func(kind, value any) Badge {
			v := fmt.Sprint(value)
			st := presentation.Lookup(presentation.Kind(fmt.Sprint(kind)), v)
			return Badge{Text: presentation.StatusText(v), Class: st.Class, Icon: st.Icon}
		},
		"color": func(kind, value any) string {
			return presentation.ColorFor(presentation.Kind(fmt.Sprint(kind)), fmt.Sprint(value))
		},
		"icon": func(kind, value any) string {
			return presentation.IconFor(presentation.Kind(fmt.Sprint(kind)), fmt.Sprint(value))
		},
		"label":      func(v any) string { return presentation.Label(fmt.Sprint(v)) },
		"statusText": func(v any) string { return presentation.StatusText(fmt.Sprint(v)) },
		"date":       presentation.FormatDate,
		"dateTime":   presentation.FormatDateTime,
		"lastActive": presentation.FormatLastActive,
		"relative":   presentation.FormatRelative,
		"count":      presentation.FormatCount,
		"change":     presentation.FormatChange,
		"initials":   presentation.Initials,
		"join":       strings.Join,
		"args":       func(v ...any) []any { return v },
	}
}

func (s *Server) mountPages(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tabs/"+string(dashboard.TabDashboard), http.StatusFound)
	})
	r.Route("/tabs/{tab}", func(r chi.Router) {
		r.Get("/", s.pageHandler)
		r.Post("/filter", s.sectionAction(func(sec sectionControl, r *http.Request) {
			sec.SetFilter(r.PostFormValue("filter"))
		}))
		r.Post("/select/{id}", s.sectionAction(func(sec sectionControl, r *http.Request) {
			sec.Select(chi.URLParam(r, "id"))
		}))
		r.Post("/deselect", s.sectionAction(func(sec sectionControl, r *http.Request) {
			sec.Deselect()
		}))
		r.Post("/create/open", s.sectionAction(func(sec sectionControl, r *http.Request) {
			sec.OpenCreate()
		}))
		r.Post("/create/close", s.sectionAction(func(sec sectionControl, r *http.Request) {
			sec.CloseCreate()
		}))
		r.Post("/records/{id}/status", s.statusFormHandler)
	})
}

func (s *Server) section(tab string) (sectionControl, bool) {
	switch tab {
	case dashboard.SectionChecklists:
		return s.board.Checklists, true
	case dashboard.SectionReports:
		return s.board.Reports, true
	case dashboard.SectionUsers:
		return s.board.Users, true
	case dashboard.SectionVideos:
		return s.board.Videos, true
	}
	return nil, false
}

func (s *Server) statusSetter(tab string) (statusSetter, bool) {
	switch tab {
	case dashboard.SectionReports:
		return func(ctx context.Context, id, to, actor, reason string) (bool, error) {
			_, found, err := s.board.Reports.SetStatusString(ctx, id, to, actor, reason)
			return found, err
		}, true
	case dashboard.SectionVideos:
		return func(ctx context.Context, id, to, actor, reason string) (bool, error) {
			_, found, err := s.board.Videos.SetStatusString(ctx, id, to, actor, reason)
			return found, err
		}, true
	}
	return nil, false
}

// sectionAction wraps a form post on a section and redirects back to its tab.
func (s *Server) sectionAction(fn func(sectionControl, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := chi.URLParam(r, "tab")
		sec, ok := s.section(tab)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectToTab(w, r, tab, "Invalid form submission.")
			return
		}
		fn(sec, r)
		redirectToTab(w, r, tab, "")
	}
}

// statusFormHandler handles the status buttons of reports and videos.
func (s *Server) statusFormHandler(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	set, ok := s.statusSetter(tab)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectToTab(w, r, tab, "Invalid form submission.")
		return
	}

	_, err := set(r.Context(), chi.URLParam(r, "id"), r.PostFormValue("status"), actorFrom(r), r.PostFormValue("reason"))
	if err != nil {
		var te *lifecycle.TransitionError
		if errors.As(err, &te) {
			redirectToTab(w, r, tab, te.Message)
			return
		}
		s.logger.Error("status change failed", "section", tab, "error", err)
		redirectToTab(w, r, tab, "The status could not be changed.")
		return
	}
	redirectToTab(w, r, tab, "")
}

func redirectToTab(w http.ResponseWriter, r *http.Request, tab, errMsg string) {
	target := "/tabs/" + url.PathEscape(tab)
	if errMsg != "" {
		target += "?" + url.Values{"error": {errMsg}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	tab := dashboard.ParseTab(chi.URLParam(r, "tab"))
	page := s.buildPage(tab, r.URL.Query().Get("error"))

	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "layout", page); err != nil {
		s.logger.Error("failed to render page", "tab", tab, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) buildPage(tab dashboard.Tab, errMsg string) Page {
	b := s.board
	page := Page{
		AppName:     appName,
		AppSubtitle: appSubtitle,
		Header:      headerTitle,
		Tab:         tab,
		Nav:         dashboard.Navigation(tab),
		Error:       errMsg,
		Now:         b.Now(),
		Stats:       b.Stats(),
	}

	switch tab {
	case dashboard.TabDashboard:
		page.Overview = b.Overview()
	case dashboard.TabChecklists:
		page.Checklists = b.Checklists.Visible()
		page.Section = sectionView(b.Checklists, len(page.Checklists))
		if c, ok := b.Checklists.Selected(); ok {
			page.SelectedChecklist = &c
		}
	case dashboard.TabReports:
		page.Reports = statusRows(b.Reports, b.Reports.Visible())
		page.Section = sectionView(b.Reports.Section, len(page.Reports))
		if rep, ok := b.Reports.Selected(); ok {
			page.SelectedReport = &statusRows(b.Reports, []records.Report{rep})[0]
		}
	case dashboard.TabUsers:
		page.Users = b.Users.Visible()
		page.Section = sectionView(b.Users, len(page.Users))
		if u, ok := b.Users.Selected(); ok {
			page.SelectedUser = &u
		}
	case dashboard.TabVideos:
		page.Videos = statusRows(b.Videos, b.Videos.Visible())
		page.Section = sectionView(b.Videos.Section, len(page.Videos))
		if v, ok := b.Videos.Selected(); ok {
			page.SelectedVideo = &statusRows(b.Videos, []records.Video{v})[0]
		}
	}
	return page
}

func sectionView[T records.Record](sec *dashboard.Section[T], visible int) SectionView {
	st := sec.State()
	view := SectionView{Meta: sec.Meta(), State: st}
	for _, key := range sec.FilterOptions() {
		view.Options = append(view.Options, FilterOption{
			Key:    key,
			Label:  presentation.Label(key),
			Active: key == st.Filter,
		})
	}
	if visible == 0 {
		empty := sec.EmptyState(st.Filter)
		view.Empty = &empty
	}
	return view
}

func statusRows[T records.Record, S ~string](sec *dashboard.StatusSection[T, S], items []T) []Row[T] {
	rows := make([]Row[T], len(items))
	for i, rec := range items {
		rows[i].Record = rec
		for _, rule := range sec.Actions(rec) {
			rows[i].Actions = append(rows[i].Actions, ActionButton{To: string(rule.To), Label: rule.Action})
		}
	}
	return rows
}
