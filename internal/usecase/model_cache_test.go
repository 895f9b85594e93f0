package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	domsvc "SalesCast/internal/domain/service"
)

func TestCacheTrainsAtMostOnce(t *testing.T) {
	cache := NewModelCache()
	var trainings int32
	train := func(context.Context) (domsvc.ModelHandle, error) {
		atomic.AddInt32(&trainings, 1)
		return &fakeHandle{points: testSeries().Points}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.GetOrTrain(context.Background(), train); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&trainings); got != 1 {
		t.Fatalf("expected one training, got %d", got)
	}
}

func TestCacheFailureLeavesSlotEmpty(t *testing.T) {
	cache := NewModelCache()
	fail := func(context.Context) (domsvc.ModelHandle, error) {
		return nil, errors.New("boom")
	}
	if _, err := cache.GetOrTrain(context.Background(), fail); err == nil {
		t.Fatalf("expected error")
	}
	if cache.Peek() != nil {
		t.Fatalf("slot must stay empty after failure")
	}
}

func TestCacheInvalidateAndReplace(t *testing.T) {
	cache := NewModelCache()
	first := &fakeHandle{points: testSeries().Points}
	cache.Replace(first)
	if cache.Peek() != first {
		t.Fatalf("expected replaced handle")
	}

	second := &fakeHandle{points: testSeries().Points}
	cache.Replace(second)
	if cache.Peek() != second {
		t.Fatalf("expected second handle after replace")
	}

	cache.Invalidate()
	if cache.Peek() != nil {
		t.Fatalf("expected empty slot after invalidate")
	}
}
