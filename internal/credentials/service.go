package credentials

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyCredential = errors.New("credential is empty")

// Status describes a stored credential without exposing it.
type Status struct {
	Configured bool   `json:"configured"`
	Hint       string `json:"hint,omitempty"`
}

// Service stores the completion credential for a caller scope under APIKeyName.
type Service struct {
	Store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Save stores the credential, replacing any previous value.
func (s *Service) Save(ctx context.Context, scope, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ErrEmptyCredential
	}
	if scope == "" {
		return errors.New("scope is required")
	}
	return s.Store.Set(ctx, scope, APIKeyName, credential)
}

// Load returns the stored credential, or ErrNotFound.
func (s *Service) Load(ctx context.Context, scope string) (string, error) {
	if scope == "" {
		return "", ErrNotFound
	}
	return s.Store.Get(ctx, scope, APIKeyName)
}

// Clear removes the stored credential.
func (s *Service) Clear(ctx context.Context, scope string) error {
	if scope == "" {
		return nil
	}
	return s.Store.Delete(ctx, scope, APIKeyName)
}

// Status reports whether a credential is stored, with a masked hint.
func (s *Service) Status(ctx context.Context, scope string) (Status, error) {
	val, err := s.Load(ctx, scope)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, err
	}
	return Status{Configured: true, Hint: Mask(val)}, nil
}

// Mask keeps a short prefix and the last four characters of a secret.
func Mask(secret string) string {
	runes := []rune(strings.TrimSpace(secret))
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:3]) + "..." + string(runes[len(runes)-4:])
}
