package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"stackadvisor-backend/internal/llm"
)

func newTestServer(t *testing.T, status int, body string, capture func(r *http.Request, payload map[string]any)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if capture != nil {
			capture(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var mu sync.Mutex
	var gotAuth, gotContentType string
	var gotBody map[string]any

	server := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`, func(r *http.Request, payload map[string]any) {
		mu.Lock()
		defer mu.Unlock()
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody = payload
	})

	client := NewClient(server.URL, "")
	content, err := client.Complete(context.Background(), "sk-test", llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "sys"},
			{Role: llm.RoleUser, Content: "usr"},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "hello" {
		t.Fatalf("expected content hello, got %q", content)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected Content-Type %q", gotContentType)
	}
	if gotBody["model"] != DefaultModel {
		t.Fatalf("expected default model, got %v", gotBody["model"])
	}
	if temp, ok := gotBody["temperature"].(float64); !ok || temp < 0.69 || temp > 0.71 {
		t.Fatalf("expected temperature 0.7, got %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(2048) {
		t.Fatalf("expected max_tokens 2048, got %v", gotBody["max_tokens"])
	}
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", gotBody["messages"])
	}
	first := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "sys" {
		t.Fatalf("unexpected first message %v", first)
	}
}

func TestCompleteRequiresCredential(t *testing.T) {
	calls := 0
	server := newTestServer(t, http.StatusOK, `{}`, func(r *http.Request, payload map[string]any) {
		calls++
	})

	client := NewClient(server.URL, "")
	_, err := client.Complete(context.Background(), "", llm.ChatRequest{})
	if !errors.Is(err, llm.ErrCredentialRequired) {
		t.Fatalf("expected ErrCredentialRequired, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", calls)
	}
}

func TestCompleteUpstreamErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server message", status: http.StatusUnauthorized, body: `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, wantMsg: "Incorrect API key provided"},
		{name: "no message", status: http.StatusInternalServerError, body: `oops`, wantMsg: ""},
		{name: "empty error object", status: http.StatusBadGateway, body: `{"error":{}}`, wantMsg: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body, nil)
			client := NewClient(server.URL, "gpt-4o-mini")
			_, err := client.Complete(context.Background(), "sk-test", llm.ChatRequest{})
			var upstream *llm.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstream.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, upstream.StatusCode)
			}
			if upstream.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, upstream.Message)
			}
		})
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	bodies := []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{"content":""}}]}`,
		`{"choices":[{}]}`,
	}
	for _, body := range bodies {
		server := newTestServer(t, http.StatusOK, body, nil)
		client := NewClient(server.URL, "")
		_, err := client.Complete(context.Background(), "sk-test", llm.ChatRequest{})
		if !errors.Is(err, llm.ErrEmptyResponse) {
			t.Fatalf("body %s: expected ErrEmptyResponse, got %v", body, err)
		}
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "")
	_, err := client.Complete(context.Background(), "sk-test", llm.ChatRequest{})
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 0 {
		t.Fatalf("expected no status for transport failure, got %d", upstream.StatusCode)
	}
}
