package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DoyleJ11/lol-portal/data"
	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/hub"
	"github.com/DoyleJ11/lol-portal/internal/storage"
	"github.com/DoyleJ11/lol-portal/internal/storage/sqlite"
	"github.com/DoyleJ11/lol-portal/internal/types"
)

func newServer(t *testing.T, loaded bool) (http.Handler, *catalog.Library) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return newServerOn(t, ctx, storage.NewMemory(), loaded)
}

func newServerOn(t *testing.T, ctx context.Context, slot storage.Slot, loaded bool) (http.Handler, *catalog.Library) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	lib := catalog.NewLibrary()
	if loaded {
		require.NoError(t, lib.Load(ctx, catalog.FSSource{FS: data.FS}, logger))
	}
	h := hub.NewHub(ctx, hub.Deps{Library: lib, Slot: slot, Logger: logger})
	return SetupRoutes(h, lib, logger), lib
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type championList struct {
	Champions []struct {
		Name string `json:"name"`
	} `json:"champions"`
}

func names(l championList) []string {
	out := []string{}
	for _, c := range l.Champions {
		out = append(out, c.Name)
	}
	return out
}

func TestHealthz(t *testing.T) {
	srv, _ := newServer(t, false)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/healthz", "").Code)
}

func TestSection_LoadingThenReady(t *testing.T) {
	srv, lib := newServer(t, false)

	rec := do(t, srv, http.MethodGet, "/api/sections/roles", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/fragments/roles", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "skeleton-card")

	require.NoError(t, lib.Load(context.Background(), catalog.FSSource{FS: data.FS}, zaptest.NewLogger(t)))

	rec = do(t, srv, http.MethodGet, "/api/sections/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roles"`)

	rec = do(t, srv, http.MethodGet, "/fragments/roles", "")
	assert.Contains(t, rec.Body.String(), "role-card")
	assert.NotContains(t, rec.Body.String(), "skeleton")

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/sections/lore", "").Code)
}

func TestChampions_Filters(t *testing.T) {
	srv, _ := newServer(t, true)

	tests := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{"composite region", url.Values{"region": {"Piltover & Zaun"}}, []string{"Caitlyn", "Jinx", "Vi"}},
		{"category and query", url.Values{"category": {"Assassin"}, "q": {"KHA"}}, []string{"Kha'Zix"}},
		{"favorites without session", url.Values{"category": {"favorites"}}, []string{}},
		{"no match", url.Values{"q": {"zzz"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/champions?"+tt.query.Encode(), "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, names(decode[championList](t, rec)))
		})
	}
}

func TestSuggestAndRandom(t *testing.T) {
	srv, _ := newServer(t, true)

	rec := do(t, srv, http.MethodGet, "/api/champions/suggest?q=z", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[struct {
		Suggestions []struct {
			Name string `json:"name"`
		} `json:"suggestions"`
	}](t, rec)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "Zed", got.Suggestions[0].Name)

	rec = do(t, srv, http.MethodGet, "/api/champions/random", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name"`)
}

func TestSessionFlow(t *testing.T) {
	srv, _ := newServer(t, true)

	rec := do(t, srv, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[struct {
		ID string `json:"id"`
	}](t, rec).ID
	require.NotEmpty(t, id)
	base := "/sessions/" + id

	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodGet, base+"/compare", "").Code)

	for _, name := range []string{"Ahri", "Zed"} {
		rec = do(t, srv, http.MethodPost, base+"/intents", `{"type":"ToggleCompare","value":"`+name+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	msg := decode[types.ServerMessage](t, rec)
	require.NotNil(t, msg.Snapshot)
	assert.True(t, msg.Snapshot.Compare.Ready)
	assert.Equal(t, 2, msg.Version)

	rec = do(t, srv, http.MethodGet, base+"/compare", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vs-container")

	rec = do(t, srv, http.MethodPost, base+"/intents", `{"type":"ToggleFavorite","value":"Teemo"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rejected := decode[types.ServerMessage](t, rec)
	assert.NotEmpty(t, rejected.Error)
	assert.Equal(t, 2, rejected.Version, "rejected intent keeps the version")

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, base+"/intents", `{"type":"LockPick"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, base+"/intents", `{`).Code)

	rec = do(t, srv, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[types.ServerMessage](t, rec).Version)

	rec = do(t, srv, http.MethodGet, base+"/page", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="compare-btn active"`)
}

func TestCreateSession_ReattachAfterRestart(t *testing.T) {
	slot, err := sqlite.Open(filepath.Join(t.TempDir(), "favs.db"))
	require.NoError(t, err)
	defer slot.Close()

	ctx1, cancel1 := context.WithCancel(context.Background())
	srv1, _ := newServerOn(t, ctx1, slot, true)

	rec := do(t, srv1, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[struct {
		ID string `json:"id"`
	}](t, rec).ID
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)

	rec = do(t, srv1, http.MethodPost, "/sessions/"+id+"/intents", `{"type":"ToggleFavorite","value":"Ahri"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancel1()

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	srv2, _ := newServerOn(t, ctx2, slot, true)

	assert.Equal(t, http.StatusNotFound, do(t, srv2, http.MethodGet, "/sessions/"+id, "").Code)

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	srv2.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, id, decode[struct {
		ID string `json:"id"`
	}](t, rec).ID)

	rec = do(t, srv2, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Ahri"}, decode[types.ServerMessage](t, rec).Snapshot.Favorites)

	rec = do(t, srv2, http.MethodPost, "/sessions", `{"id":"`+id+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), id, "body id re-attaches too")
}

func TestCreateSession_RejectsMalformedID(t *testing.T) {
	srv, _ := newServer(t, true)

	rec := do(t, srv, http.MethodPost, "/sessions", `{"id":"../../etc"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[struct {
		ID string `json:"id"`
	}](t, rec).ID
	assert.NotEqual(t, "../../etc", id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestUnknownSession(t *testing.T) {
	srv, _ := newServer(t, true)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/sessions/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/sessions/nope/intents", `{"type":"ClearBuild"}`).Code)
}
