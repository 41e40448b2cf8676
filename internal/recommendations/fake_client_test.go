package recommendations

import (
	"context"
	"sync"

	"stackadvisor-backend/internal/credentials"
	"stackadvisor-backend/internal/llm"
)

type fakeClient struct {
	mu       sync.Mutex
	content  string
	err      error
	calls    int
	lastCred string
	lastReq  llm.ChatRequest
	block    chan struct{}
	entered  chan struct{}
}

func (f *fakeClient) Complete(ctx context.Context, credential string, req llm.ChatRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastCred = credential
	f.lastReq = req
	block := f.block
	entered := f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.content, f.err
}

func (f *fakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCredentials map[string]string

func (f fakeCredentials) Load(ctx context.Context, scope string) (string, error) {
	v, ok := f[scope]
	if !ok {
		return "", credentials.ErrNotFound
	}
	return v, nil
}

type failingCredentials struct {
	err error
}

func (f failingCredentials) Load(ctx context.Context, scope string) (string, error) {
	return "", f.err
}
