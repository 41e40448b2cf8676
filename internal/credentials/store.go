package credentials

import (
	"context"
	"errors"
)

// APIKeyName is the fixed key the completion credential is stored under.
const APIKeyName = "openai_api_key"

var ErrNotFound = errors.New("credential not found")

// Store is a scoped key-value store for secrets.
type Store interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}
