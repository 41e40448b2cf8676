package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"stackadvisor-backend/internal/credentials"
	"stackadvisor-backend/internal/llm"
	"stackadvisor-backend/internal/shared/config"
)

const testGuestID = "0d6f2a57-93c4-4b9e-a1a7-6c1e2f3b4d5e"

func testConfig(apiURL string) config.Config {
	return config.Config{
		Env:             "test",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LLMProvider:     "openai",
		LLMModel:        "gpt-4o-mini",
		OpenAIAPIURL:    apiURL,
		CredentialStore: "memory",
	}
}

func newUpstream(t *testing.T, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		resp := map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, calls
}

func doJSON(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", testGuestID)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildMemoryApp(t *testing.T) {
	app, err := Build(testConfig("http://127.0.0.1:0"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if _, ok := app.CredentialStore.(*credentials.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", app.CredentialStore)
	}
	if app.DB != nil || app.Redis != nil {
		t.Fatalf("expected no external connections")
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "recommendation_started_total") {
		t.Fatalf("unexpected metrics response %d %s", resp.Code, resp.Body.String())
	}
}

func TestRecommendationFlowUsesStoredCredential(t *testing.T) {
	upstream, calls := newUpstream(t, "```json\n[{\"category\":\"Database\",\"primary\":\"PostgreSQL\",\"alternatives\":[\"MySQL\"],\"reasoning\":\"fits\"}]\n```")
	app, err := Build(testConfig(upstream.URL))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"projectName":"Shop"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credential, got %d", resp.Code)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no upstream calls without credential, got %d", calls.Load())
	}

	resp = doJSON(t, app, http.MethodPut, "/api/v1/credential", `{"apiKey":"sk-test-123456789"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("save credential expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"projectName":"Shop"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("recommend expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var outcome struct {
		Source          string `json:"source"`
		Recommendations []struct {
			Primary string `json:"primary"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if outcome.Source != "ai" || len(outcome.Recommendations) != 1 || outcome.Recommendations[0].Primary != "PostgreSQL" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", calls.Load())
	}
}

func TestRecommendationFlowFallsBackOnMalformedContent(t *testing.T) {
	upstream, _ := newUpstream(t, "I cannot help with that.")
	app, err := Build(testConfig(upstream.URL))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"apiKey":"sk-inline"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var outcome struct {
		Source          string            `json:"source"`
		Warning         string            `json:"warning"`
		Recommendations []json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if outcome.Source != "fallback" || outcome.Warning == "" || len(outcome.Recommendations) != 6 {
		t.Fatalf("unexpected fallback outcome %+v", outcome)
	}
}

func TestBuildLLMClientPlaceholder(t *testing.T) {
	cfg := testConfig("")
	cfg.LLMProvider = "anthropic"
	if _, ok := BuildLLMClient(cfg).(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder client for unknown provider")
	}
}

func TestBuildPostgresWithoutURLFallsBackInDev(t *testing.T) {
	cfg := testConfig("")
	cfg.CredentialStore = "postgres"
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.CredentialStore.(*credentials.MemoryStore); !ok {
		t.Fatalf("expected memory store fallback, got %T", app.CredentialStore)
	}

	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}
