package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/progress"
)

const questsJSON = `[
  {"id": "A", "name": "Debut", "trader": "Prapor", "kappa_required": true},
  {"id": "B", "name": "Checking", "trader": "Prapor", "requires": "A"},
  {"id": "C", "name": "Shootout", "trader": "Prapor", "requires": ["A"], "kappa_required": true},
  {"id": "D", "name": "Delivery", "trader": "Therapist", "requires": ["B", "C"]}
]`

func newTestServer(t *testing.T) (*httptest.Server, *progress.FileStore) {
	t.Helper()
	dir := t.TempDir()
	questsPath := filepath.Join(dir, "quests.json")
	if err := os.WriteFile(questsPath, []byte(questsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	store := progress.NewFileStore(filepath.Join(dir, "progress.json"))
	s := New(Options{Store: store, QuestsPath: questsPath})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func do(t *testing.T, method, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz")

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestListQuests(t *testing.T) {
	ts, _ := newTestServer(t)

	all := decode[[]map[string]any](t, do(t, http.MethodGet, ts.URL+"/quests"))
	if len(all) != 4 {
		t.Errorf("quests = %d, want 4", len(all))
	}

	kappa := decode[[]map[string]any](t, do(t, http.MethodGet, ts.URL+"/quests?kappa=true"))
	if len(kappa) != 2 {
		t.Errorf("kappa quests = %d, want 2", len(kappa))
	}
}

func TestGetQuest(t *testing.T) {
	ts, _ := newTestServer(t)

	q := decode[map[string]any](t, do(t, http.MethodGet, ts.URL+"/quests/D"))
	if q["name"] != "Delivery" {
		t.Errorf("name = %v", q["name"])
	}

	resp := do(t, http.MethodGet, ts.URL+"/quests/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	body := decode[errorBody](t, resp)
	if body.Code != "QUEST_NOT_FOUND" {
		t.Errorf("code = %q, want QUEST_NOT_FOUND", body.Code)
	}
}

func TestProgressLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPut, ts.URL+"/progress/A")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
	if got := decode[ToggleResponse](t, resp); !got.Completed {
		t.Error("PUT should mark completed")
	}

	toggled := decode[ToggleResponse](t, do(t, http.MethodPost, ts.URL+"/progress/B/toggle"))
	if !toggled.Completed {
		t.Error("toggle should complete B")
	}

	p := decode[ProgressResponse](t, do(t, http.MethodGet, ts.URL+"/progress"))
	if p.Done != 2 || p.Total != 4 || p.Percent != 50 {
		t.Errorf("progress = %+v, want 2/4 50%%", p)
	}
	if strings.Join(p.Completed, ",") != "A,B" {
		t.Errorf("completed = %v", p.Completed)
	}

	unmarked := decode[ToggleResponse](t, do(t, http.MethodDelete, ts.URL+"/progress/A"))
	if unmarked.Completed {
		t.Error("DELETE should unmark")
	}
	p = decode[ProgressResponse](t, do(t, http.MethodGet, ts.URL+"/progress"))
	if p.Done != 1 {
		t.Errorf("done = %d, want 1", p.Done)
	}
}

func TestProgressUnknownQuest(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPut, ts.URL+"/progress/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestLayout(t *testing.T) {
	ts, store := newTestServer(t)
	if err := store.Mark(t.Context(), "A"); err != nil {
		t.Fatal(err)
	}

	resp := do(t, http.MethodGet, ts.URL+"/layout")
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	res := decode[layout.Result](t, resp)
	if res.NodeCount() != 4 || len(res.Edges) != 4 {
		t.Errorf("layout = %d nodes, %d edges", res.NodeCount(), len(res.Edges))
	}
	a, _ := res.Node("A")
	if !a.Completed {
		t.Error("A should be completed")
	}

	res = decode[layout.Result](t, do(t, http.MethodGet, ts.URL+"/layout?hide_completed=true"))
	if res.NodeCount() != 3 {
		t.Errorf("hide_completed nodes = %d, want 3", res.NodeCount())
	}
}

func TestLayoutFormats(t *testing.T) {
	ts, _ := newTestServer(t)

	svg := do(t, http.MethodGet, ts.URL+"/layout.svg")
	if ct := svg.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg Content-Type = %q", ct)
	}

	dot := do(t, http.MethodGet, ts.URL+"/layout.dot")
	body, err := io.ReadAll(dot.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "digraph G") {
		t.Error("dot body is not a digraph")
	}
}

func TestNotFoundRoute(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if decode[errorBody](t, resp).Code != "NOT_FOUND" {
		t.Error("unexpected error code")
	}
}

func TestMissingQuestFile(t *testing.T) {
	s := New(Options{QuestsPath: filepath.Join(t.TempDir(), "none.json")})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quests", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
