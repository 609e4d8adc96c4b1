package httpapi

import (
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DoyleJ11/lol-portal/internal/build"
	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/compare"
	"github.com/DoyleJ11/lol-portal/internal/engine"
	"github.com/DoyleJ11/lol-portal/internal/favorites"
	"github.com/DoyleJ11/lol-portal/internal/filter"
	"github.com/DoyleJ11/lol-portal/internal/hub"
	"github.com/DoyleJ11/lol-portal/internal/quiz"
	"github.com/DoyleJ11/lol-portal/internal/render"
	"github.com/DoyleJ11/lol-portal/internal/session"
	"github.com/DoyleJ11/lol-portal/internal/types"
	"github.com/DoyleJ11/lol-portal/internal/view"
	pagetypes "github.com/DoyleJ11/lol-portal/pkg/types"
)

const maxIntentBytes = 4 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorMessage(msg))
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func sectionData(c *catalog.Content, s catalog.Section) any {
	switch s {
	case catalog.SectionIntro:
		return c.Intro
	case catalog.SectionChampions:
		return struct {
			Champions catalog.Catalog `json:"champions"`
		}{c.Champions}
	case catalog.SectionRoles:
		return struct {
			Roles []catalog.Role `json:"roles"`
		}{c.Roles}
	case catalog.SectionModes:
		return struct {
			Modes []catalog.Mode `json:"modes"`
		}{c.Modes}
	case catalog.SectionSpells:
		return struct {
			Spells []catalog.Spell `json:"spells"`
		}{c.Spells}
	case catalog.SectionRegions:
		return struct {
			Regions []catalog.Region `json:"regions"`
		}{c.Regions}
	case catalog.SectionItems:
		return struct {
			Items []catalog.Item `json:"items"`
		}{c.Items}
	case catalog.SectionQuiz:
		return c.Quiz
	}
	return nil
}

// Section serves one section as JSON, 503 until it is ready.
func Section(lib session.ContentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section, ok := catalog.ParseSection(chi.URLParam(r, "section"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown section")
			return
		}
		content := lib.Content()
		switch content.Status(section) {
		case catalog.StatusLoading:
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, "section loading")
			return
		case catalog.StatusFailed:
			writeError(w, http.StatusServiceUnavailable, "section unavailable")
			return
		}
		writeJSON(w, http.StatusOK, sectionData(content, section))
	}
}

// Champions is the stateless filter: no favorites, so that category is empty.
func Champions(lib session.ContentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := lib.Content()
		if content.Status(catalog.SectionChampions) != catalog.StatusReady {
			writeError(w, http.StatusServiceUnavailable, "champions unavailable")
			return
		}

		q := r.URL.Query()
		st := filter.NewState()
		if c := q.Get("category"); c != "" {
			st.Category = c
		}
		st.Query = q.Get("q")
		if region := q.Get("region"); region != "" {
			st.Region = region
			st.RegionMembers = content.ResolveRegion(region)
		}

		cards := view.Cards(content.Champions, engine.State{Filter: st}, nil)
		writeJSON(w, http.StatusOK, struct {
			Champions []pagetypes.ChampionCard `json:"champions"`
		}{cards})
	}
}

func Suggest(lib session.ContentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := lib.Content()
		if content.Status(catalog.SectionChampions) != catalog.StatusReady {
			writeError(w, http.StatusServiceUnavailable, "champions unavailable")
			return
		}
		limit := filter.DefaultSuggestions
		if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
			limit = n
		}

		out := []pagetypes.Suggestion{}
		for _, c := range filter.Suggest(content.Champions, r.URL.Query().Get("q"), limit) {
			out = append(out, pagetypes.Suggestion{Name: c.Name, Image: c.Image})
		}
		writeJSON(w, http.StatusOK, struct {
			Suggestions []pagetypes.Suggestion `json:"suggestions"`
		}{out})
	}
}

func RandomChampion(lib session.ContentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := lib.Content()
		if content.Status(catalog.SectionChampions) != catalog.StatusReady {
			writeError(w, http.StatusServiceUnavailable, "champions unavailable")
			return
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		c, ok := content.Champions.Random(rng)
		if !ok {
			writeError(w, http.StatusNotFound, "catalog empty")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// Fragment serves one static section as HTML; loading sections get the
// skeleton.
func Fragment(lib session.ContentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section, ok := catalog.ParseSection(chi.URLParam(r, "section"))
		if !ok {
			http.Error(w, "unknown section", http.StatusNotFound)
			return
		}
		templ.Handler(render.Section(lib.Content(), section)).ServeHTTP(w, r)
	}
}

// VisitorCookie carries the visitor id between page loads so a returning
// visitor gets their favorites back.
const VisitorCookie = "lol_visitor"

const visitorCookieAge = 365 * 24 * time.Hour

// visitorID picks the id to attach to: the body's id, then the cookie, then a
// fresh one. Only well-formed UUIDs are accepted, since the id becomes part
// of the storage key.
func visitorID(r *http.Request) string {
	var body struct {
		ID string `json:"id"`
	}
	if data, err := io.ReadAll(io.LimitReader(r.Body, maxIntentBytes)); err == nil && len(data) > 0 {
		_ = sonic.Unmarshal(data, &body)
	}
	candidates := []string{body.ID}
	if c, err := r.Cookie(VisitorCookie); err == nil {
		candidates = append(candidates, c.Value)
	}
	for _, c := range candidates {
		if id, err := uuid.Parse(c); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

// CreateSession attaches the visitor to their session, creating it (and
// loading their stored favorites) when it is not live.
func CreateSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := visitorID(r)
		if h.Ensure(r.Context(), id) == nil {
			writeError(w, http.StatusInternalServerError, "failed to create session")
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     VisitorCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(visitorCookieAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusCreated, struct {
			ID string `json:"id"`
		}{ID: id})
	}
}

func lookup(h *hub.Hub, w http.ResponseWriter, r *http.Request) *session.Session {
	s := h.Lookup(r.Context(), chi.URLParam(r, "id"))
	if s == nil {
		writeError(w, http.StatusNotFound, "session not found")
	}
	return s
}

func GetSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(h, w, r)
		if s == nil {
			return
		}
		v, err := s.View(r.Context())
		if err != nil {
			writeError(w, http.StatusGone, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.SnapshotMessage(v.Version, v.Page, ""))
	}
}

func SessionPage(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(h, w, r)
		if s == nil {
			return
		}
		v, err := s.View(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		templ.Handler(render.Page(v.Page)).ServeHTTP(w, r)
	}
}

// PostIntent applies one intent. A rejected intent still returns the
// unchanged snapshot next to the error.
func PostIntent(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(h, w, r)
		if s == nil {
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxIntentBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad body")
			return
		}
		var cm types.ClientMessage
		if err := sonic.Unmarshal(body, &cm); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		cmd, err := cm.ToCommand()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := s.Apply(r.Context(), "", cmd)
		if err != nil {
			writeError(w, http.StatusGone, err.Error())
			return
		}
		if res.Err != nil {
			writeJSON(w, intentStatus(res.Err), types.SnapshotMessage(res.Snapshot.Version, res.Snapshot.Page, res.Err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, types.SnapshotMessage(res.Snapshot.Version, res.Snapshot.Page, ""))
	}
}

func intentStatus(err error) int {
	var storageErr *favorites.StorageError
	switch {
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrContentLoading):
		return http.StatusServiceUnavailable
	case errors.Is(err, build.ErrInventoryFull),
		errors.Is(err, quiz.ErrNotStarted),
		errors.Is(err, quiz.ErrFinished):
		return http.StatusConflict
	case errors.Is(err, build.ErrSlotOutOfRange), errors.Is(err, quiz.ErrBadAnswer):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Compare renders the matchup modal for a full selection.
func Compare(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(h, w, r)
		if s == nil {
			return
		}
		m, err := s.Matchup(r.Context())
		switch {
		case errors.Is(err, compare.ErrNotReady):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case errors.Is(err, engine.ErrContentLoading):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		templ.Handler(render.Matchup(m)).ServeHTTP(w, r)
	}
}
