package usecase

import (
	"context"
	"sync"

	domsvc "SalesCast/internal/domain/service"
)

// ModelCache is the single-slot reuse layer for the default-source model.
// The mutex is held across training so concurrent first readers block for
// the in-flight fit and then share the same handle; a read never invalidates
// the slot. Replace and Invalidate are the only mutation paths.
type ModelCache struct {
	mu     sync.Mutex
	handle domsvc.ModelHandle
}

func NewModelCache() *ModelCache { return &ModelCache{} }

// GetOrTrain returns the cached handle, calling train at most once across
// concurrent callers when the slot is empty. A failed training leaves the
// slot empty.
func (c *ModelCache) GetOrTrain(ctx context.Context, train func(context.Context) (domsvc.ModelHandle, error)) (domsvc.ModelHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		return c.handle, nil
	}
	h, err := train(ctx)
	if err != nil {
		return nil, err
	}
	c.handle = h
	return h, nil
}

// Replace swaps in a freshly trained handle. Used by the refresh trigger,
// the only legitimate invalidation path during normal operation.
func (c *ModelCache) Replace(h domsvc.ModelHandle) {
	c.mu.Lock()
	c.handle = h
	c.mu.Unlock()
}

// Invalidate clears the slot so the next read trains again.
func (c *ModelCache) Invalidate() {
	c.mu.Lock()
	c.handle = nil
	c.mu.Unlock()
}

// Peek returns the cached handle without training, or nil.
func (c *ModelCache) Peek() domsvc.ModelHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}
