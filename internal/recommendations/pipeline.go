package recommendations

import (
	"context"
	"strings"
	"time"

	"stackadvisor-backend/internal/llm"
	"stackadvisor-backend/internal/shared/metrics"
)

// Pipeline turns project requirements into recommendations through a chat-completion provider.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	LLM llm.Client
}

// NewPipeline constructs a Pipeline.
func NewPipeline(client llm.Client) *Pipeline {
	return &Pipeline{LLM: client}
}

// Request builds the prompt, performs one completion call and extracts the recommendation array.
// It does not retry and does not fall back; see Service for the fallback policy.
func (p *Pipeline) Request(ctx context.Context, params ProjectRequirements, credential string) ([]Recommendation, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrCredentialRequired
	}
	client := p.LLM
	if client == nil {
		client = llm.PlaceholderClient{}
	}

	start := time.Now()
	content, err := client.Complete(ctx, credential, BuildChatRequest(params))
	metrics.ObserveUpstreamDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, ErrEmptyResponse
	}

	return ExtractRecommendations(content)
}
