package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"stackadvisor-backend/internal/llm"
)

const (
	DefaultAPIURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel  = "gpt-4o-mini"
)

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client. The credential is supplied per call.
func NewClient(apiURL, model string) *Client {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiURL: apiURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat completion request and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, credential string, in llm.ChatRequest) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", llm.ErrCredentialRequired
	}

	reqMessages := make([]chatMessage, 0, len(in.Messages))
	for _, m := range in.Messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    reqMessages,
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", &llm.UpstreamError{Message: "openai request timeout", Err: err}
		}
		return "", &llm.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.UpstreamError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &llm.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &llm.UpstreamError{StatusCode: resp.StatusCode, Message: "openai response parse", Err: err}
	}
	logUsage(c.model, parsed)

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil {
		return "", llm.ErrEmptyResponse
	}
	content := parsed.Choices[0].Message.Content
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

// upstreamMessage pulls error.message out of an error body, if there is one.
func upstreamMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Error == nil {
		return ""
	}
	return strings.TrimSpace(parsed.Error.Message)
}

func logUsage(model string, resp chatResponse) {
	if resp.Usage == nil {
		log.Printf("llm response model=%s id=%s", model, resp.ID)
		return
	}
	log.Printf("llm response model=%s id=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, resp.ID, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
