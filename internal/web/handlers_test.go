package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/db"
	"github.com/contributorsambhav/portfolio/internal/metrics"
	"github.com/contributorsambhav/portfolio/internal/providers"
)

type stubSource struct {
	results []providers.Result
	calls   int
}

func (s *stubSource) Fetch(ctx context.Context) []providers.Result {
	s.calls++
	return s.results
}

type testEnv struct {
	handler http.Handler
	src     *stubSource
	metrics *metrics.Collector
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.AllowedOrigins = []string{"https://example.dev"}

	today := time.Now().UTC().Format(activity.DateLayout)
	src := &stubSource{results: []providers.Result{
		{Provider: activity.GitHub, Records: []activity.Record{{Date: today, Count: 6}}},
		{Provider: activity.LeetCode, Records: []activity.Record{{Date: today, Count: 2}}},
	}}
	m := metrics.New()

	handler, err := NewHandler(Deps{
		Catalog: cat,
		DB:      database,
		Source:  src,
		Config:  cfg,
		Metrics: m,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return &testEnv{handler: handler, src: src, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// --- pages ---

func TestHome(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "Sambhav Gupta", "Featured projects", "Chess Master"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers not set")
	}
}

func TestProjects_FullPage(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/projects?category=ai", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("expected full layout")
	}
	if !strings.Contains(body, "Hiraya") {
		t.Error("expected the AI project")
	}
	if strings.Contains(body, "Chess Master") {
		t.Error("fullstack project leaked into ai tab")
	}
	if !strings.Contains(body, `class="active">AI</a>`) {
		t.Error("ai tab not marked active")
	}
}

func TestProjects_ResultsFragment(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/projects?search=zzz-nothing", map[string]string{
		"HX-Request": "true",
		"HX-Target":  "results",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") || strings.Contains(body, `<form`) {
		t.Error("fragment must not include layout or form")
	}
	if !strings.Contains(body, "No projects match these filters") {
		t.Errorf("expected empty-state message, got %s", body)
	}
}

func TestProjects_TechFilter(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/projects?tech=Solidity,%20Cloudflare", map[string]string{"HX-Target": "results"})

	body := rec.Body.String()
	if !strings.Contains(body, "1 project using Solidity, Cloudflare") {
		t.Errorf("unexpected summary: %s", body)
	}
}

func TestProjectDetail(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/projects/proj-2", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Hiraya") || !strings.Contains(body, "<p>") {
		t.Error("expected rendered long description")
	}
}

func TestProjectDetail_NotFound(t *testing.T) {
	e := setupTest(t)

	rec := e.do(t, "GET", "/projects/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "project not found: nope") {
		t.Error("expected error page message")
	}

	rec = e.do(t, "GET", "/projects/nope", map[string]string{"Accept": "application/json"})
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want JSON", ct)
	}

	rec = e.do(t, "GET", "/projects/nope", map[string]string{"HX-Request": "true"})
	if !strings.Contains(rec.Body.String(), `class="error-message"`) {
		t.Error("expected error fragment")
	}
}

func TestActivityPage(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/activity", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "8 contributions") {
		t.Errorf("expected combined total of 8")
	}
	if !strings.Contains(body, `class="day l4"`) {
		t.Error("expected a level-4 cell for the busiest day")
	}
	if e.src.calls != 1 {
		t.Errorf("source calls = %d, want 1 (empty store triggers sync)", e.src.calls)
	}

	// second request reads the fresh snapshot
	rec = e.do(t, "GET", "/activity?provider=leetcode", nil)
	if !strings.Contains(rec.Body.String(), "2 contributions") {
		t.Error("expected leetcode total of 2")
	}
	if e.src.calls != 1 {
		t.Errorf("source calls = %d, want 1", e.src.calls)
	}
}

func TestActivityPage_BadProvider(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/activity?provider=hackerrank", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWeb3Page(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/web3?filter=grants", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="active">Grants</a>`) {
		t.Error("grants filter not active")
	}
}

func TestWorkPage(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/work", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStatic(t *testing.T) {
	e := setupTest(t)
	for _, path := range []string{"/static/style.css", "/static/app.js"} {
		if rec := e.do(t, "GET", path, nil); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

// --- API ---

func TestAPIProjects(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/api/projects?category=featured&tech=next.js", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 2 || out.Items[0].ID != "proj-2" || out.Items[1].ID != "proj-1" {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestAPIProject_NotFound(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/api/projects/missing", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var out map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["error"]["code"] != "NOT_FOUND" {
		t.Errorf("code = %v", out["error"]["code"])
	}
}

func TestAPIActivity(t *testing.T) {
	e := setupTest(t)

	rec := e.do(t, "GET", "/api/activity?provider=github", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var one struct {
		Provider string            `json:"provider"`
		Days     []activity.Record `json:"days"`
		Total    int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &one); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if one.Total != 6 || len(one.Days) != 1 || one.Days[0].Level != 4 {
		t.Errorf("unexpected github series: %+v", one)
	}

	rec = e.do(t, "GET", "/api/activity?refresh=true", nil)
	var all map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"github", "leetcode", "codeforces", "combined", "totals", "fetched_at"} {
		if _, ok := all[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
	if e.src.calls != 2 {
		t.Errorf("source calls = %d, want 2 (refresh forces sync)", e.src.calls)
	}
}

func TestAPITechsAndWeb3(t *testing.T) {
	e := setupTest(t)
	for _, path := range []string{"/api/techs", "/api/web3?filter=completed", "/api/profile"} {
		rec := e.do(t, "GET", path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
		if !json.Valid(rec.Body.Bytes()) {
			t.Errorf("%s returned invalid JSON", path)
		}
	}
}

func TestAPIUnknownEndpoint(t *testing.T) {
	e := setupTest(t)
	rec := e.do(t, "GET", "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAPICORS(t *testing.T) {
	e := setupTest(t)

	rec := e.do(t, "GET", "/api/techs", map[string]string{"Origin": "https://example.dev"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.dev" {
		t.Errorf("Allow-Origin = %q, want https://example.dev", got)
	}

	rec = e.do(t, "GET", "/api/techs", map[string]string{"Origin": "https://evil.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for unlisted origin", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := setupTest(t)
	e.do(t, "GET", "/projects", nil)

	rec := e.do(t, "GET", "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `portfolio_http_requests_total{method="GET",route="GET /projects",status="200"} 1`) {
		t.Error("expected request counter for GET /projects")
	}
}

// --- helpers ---

func TestTabTitle(t *testing.T) {
	tests := map[string]string{
		"all":         "All",
		"ai":          "AI",
		"web3":        "Web3",
		"in-progress": "In Progress",
		"fullstack":   "Fullstack",
		"":            "",
	}
	for in, want := range tests {
		if got := tabTitle(in); got != want {
			t.Errorf("tabTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLevelClass(t *testing.T) {
	if got := levelClass(activity.Record{}); got != "pad" {
		t.Errorf("padding cell = %q, want pad", got)
	}
	if got := levelClass(activity.Record{Date: "2024-01-01", Level: 3}); got != "l3" {
		t.Errorf("level 3 = %q, want l3", got)
	}
	if got := levelClass(activity.Record{Date: "2024-01-01", Level: 9}); got != "l4" {
		t.Errorf("level 9 = %q, want l4", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := string(renderMarkdown("**bold** <script>alert(1)</script>"))
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %s", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(0); got != "never" {
		t.Errorf("formatTime(0) = %q", got)
	}
	if got := formatTime(1704067200); got != "2024-01-01 00:00" {
		t.Errorf("formatTime = %q", got)
	}
}
