package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"stackadvisor-backend/internal/credentials"
	"stackadvisor-backend/internal/shared/metrics"
	"stackadvisor-backend/internal/shared/telemetry"
)

// CredentialSource looks up a stored credential for a caller scope.
type CredentialSource interface {
	Load(ctx context.Context, scope string) (string, error)
}

// Service applies the caller-side policy around the pipeline: credential resolution,
// one request per scope, and substitution of the fallback set on failure.
type Service struct {
	Pipeline          *Pipeline
	Credentials       CredentialSource
	DefaultCredential string

	guard *inflightGuard
}

// NewService constructs a Service.
func NewService(pipeline *Pipeline, credentials CredentialSource, defaultCredential string) *Service {
	return &Service{
		Pipeline:          pipeline,
		Credentials:       credentials,
		DefaultCredential: strings.TrimSpace(defaultCredential),
		guard:             newInflightGuard(),
	}
}

// Recommend returns live recommendations or the fallback set. The only errors returned are
// ErrCredentialRequired, so the caller can prompt for a credential, ErrCredentialLookup when the
// credential store is unreachable, and ErrRequestInProgress.
func (s *Service) Recommend(ctx context.Context, scope string, params ProjectRequirements, credential string) (Outcome, error) {
	release, ok := s.guard.Acquire(scope)
	if !ok {
		return Outcome{}, ErrRequestInProgress
	}
	defer release()

	credential, err := s.resolveCredential(ctx, scope, credential)
	if err != nil {
		return Outcome{}, err
	}
	if credential == "" {
		metrics.IncCredentialMissing()
		return Outcome{}, ErrCredentialRequired
	}

	metrics.IncRecommendationStarted()
	outcome := Outcome{ID: uuid.NewString()}
	recs, err := s.pipeline().Request(ctx, params, credential)
	if err != nil {
		if errors.Is(err, ErrCredentialRequired) {
			metrics.IncCredentialMissing()
			return Outcome{}, err
		}
		fields := map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"recommendation": outcome.ID,
			"scope":          scope,
			"failure_class":  failureClass(err),
			"error":          err.Error(),
		}
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			fields["content_bytes"] = len(malformed.Content)
		}
		telemetry.Error("recommendations.fallback", fields)
		metrics.IncRecommendationFallback()

		outcome.Source = SourceFallback
		outcome.Warning = FallbackWarning
		outcome.Recommendations = Fallback()
		return outcome, nil
	}

	telemetry.Info("recommendations.complete", map[string]any{
		"request_id":     requestIDFromContext(ctx),
		"recommendation": outcome.ID,
		"scope":          scope,
		"count":          len(recs),
	})
	metrics.IncRecommendationCompleted()
	outcome.Source = SourceAI
	outcome.Recommendations = recs
	return outcome, nil
}

func (s *Service) pipeline() *Pipeline {
	if s.Pipeline == nil {
		return &Pipeline{}
	}
	return s.Pipeline
}

// resolveCredential prefers the explicit value, then the stored one, then the default.
// A store failure falls through to the default when one is configured.
func (s *Service) resolveCredential(ctx context.Context, scope, explicit string) (string, error) {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed, nil
	}
	if s.Credentials != nil && scope != "" {
		stored, err := s.Credentials.Load(ctx, scope)
		switch {
		case err == nil:
			if trimmed := strings.TrimSpace(stored); trimmed != "" {
				return trimmed, nil
			}
		case errors.Is(err, credentials.ErrNotFound):
		default:
			telemetry.Error("recommendations.credential_lookup", map[string]any{
				"request_id":       requestIDFromContext(ctx),
				"scope":            scope,
				"error":            err.Error(),
				"default_fallback": s.DefaultCredential != "",
			})
			if s.DefaultCredential == "" {
				return "", fmt.Errorf("%w: %v", ErrCredentialLookup, err)
			}
		}
	}
	return s.DefaultCredential, nil
}
