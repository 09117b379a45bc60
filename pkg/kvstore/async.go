package kvstore

import (
	"context"
	"log/slog"
	"sync"
)

type saveRequest struct {
	key   string
	value any
}

// Async wraps a Store so that Save calls are queued onto a single background
// worker instead of blocking the caller on the durable write. A single
// consumer keeps per-key ordering, so each key's latest value wins.
type Async struct {
	inner  Store
	saveCh chan saveRequest
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAsync wraps inner with a save queue of the given buffer size.
func NewAsync(inner Store, bufferSize int) *Async {
	ctx, cancel := context.WithCancel(context.Background())
	return &Async{
		inner:  inner,
		saveCh: make(chan saveRequest, bufferSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the background writer.
func (a *Async) Start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-a.ctx.Done():
				slog.Info("draining pending saves before shutdown", "remaining", len(a.saveCh))
				for len(a.saveCh) > 0 {
					req := <-a.saveCh
					a.inner.Save(context.Background(), req.key, req.value)
				}
				return
			case req := <-a.saveCh:
				a.inner.Save(a.ctx, req.key, req.value)
			}
		}
	}()
}

// Load implements Store by reading through to the wrapped store.
func (a *Async) Load(ctx context.Context, key string, dest any) bool {
	return a.inner.Load(ctx, key, dest)
}

// Save implements Store. The write is queued; when the queue is full the
// snapshot is dropped, since a newer one for the same key will follow the
// next mutation anyway.
func (a *Async) Save(_ context.Context, key string, value any) {
	select {
	case a.saveCh <- saveRequest{key: key, value: value}:
	default:
		slog.Warn("save queue full, dropping snapshot", "key", key)
	}
}

// Shutdown stops the writer after draining queued saves.
func (a *Async) Shutdown() {
	a.cancel()
	a.wg.Wait()
}
