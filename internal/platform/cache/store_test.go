package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, nil)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const workers = 16
	var started sync.WaitGroup
	var done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			v, err := store.GetOrLoad(context.Background(), "teams:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got < 1 || got > workers {
		t.Fatalf("unexpected loader calls: %d", got)
	}
	if _, ok := store.Get(context.Background(), "teams:list"); !ok {
		t.Fatalf("expected value to be cached after load")
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, nil)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	store := NewStore(time.Minute, clk)
	store.Set(context.Background(), "user:team:1", "alice")

	clk.Add(59 * time.Second)
	if _, ok := store.Get(context.Background(), "user:team:1"); !ok {
		t.Fatalf("expected entry before ttl")
	}

	clk.Add(time.Second)
	if _, ok := store.Get(context.Background(), "user:team:1"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, nil)
	errBoom := errors.New("boom")

	_, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) { return nil, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected failed load to leave cache empty, got %d entries", store.Len())
	}
}

func TestStore_Flush(t *testing.T) {
	t.Parallel()

	store := NewStore(0, nil)
	store.Set(context.Background(), "team:1", 1)
	store.Set(context.Background(), "team:2", 2)
	store.Set(context.Background(), "user:1", 3)

	store.DeletePrefix(context.Background(), "team:")
	if store.Len() != 1 {
		t.Fatalf("expected one entry after prefix delete, got %d", store.Len())
	}

	store.Flush(context.Background())
	if store.Len() != 0 {
		t.Fatalf("expected empty store after flush, got %d", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
