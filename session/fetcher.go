package session

import (
	"context"
	"sync"
)

// Fetcher serializes the fetches of one data-consuming view. Starting a new
// fetch cancels the previous in-flight one first, so an out-of-order
// response can never overwrite newer state. Last request wins structurally,
// not by timestamp comparison.
type Fetcher struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Start cancels any in-flight fetch and returns the context the next fetch
// must run under.
func (f *Fetcher) Start(ctx context.Context) context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	return fetchCtx
}

// Stop aborts the outstanding fetch, if any. Called on consumer teardown so
// no state is updated afterwards.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
