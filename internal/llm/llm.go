package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, credential string, req ChatRequest) (string, error)
}

// Message is a single chat turn.
type Message struct {
	Role    string
	Content string
}

// ChatRequest carries the messages and sampling parameters for one completion.
type ChatRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	// ErrCredentialRequired is returned before any network access when no credential is supplied.
	ErrCredentialRequired = errors.New("credential required")
	// ErrEmptyResponse is returned when the provider answered successfully but without content.
	ErrEmptyResponse = errors.New("No recommendations received")
	// ErrNotImplemented is returned by the placeholder client.
	ErrNotImplemented = errors.New("LLM not implemented")
)

// DefaultUpstreamMessage is used when the provider gives no error message of its own.
const DefaultUpstreamMessage = "Failed to get recommendations"

// UpstreamError reports a non-success HTTP status or a transport failure.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultUpstreamMessage
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", msg, e.Err)
	}
	return "upstream: " + msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(context.Context, string, ChatRequest) (string, error) {
	return "", ErrNotImplemented
}
