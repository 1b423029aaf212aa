package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestParseLimiter_AcquireRelease(t *testing.T) {
	limiter := NewParseLimiter(2, time.Second)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}

	status := limiter.Status()
	if status.Active != 2 || status.Available != 0 {
		t.Errorf("Status = %+v, want Active=2 Available=0", status)
	}

	limiter.Release()
	limiter.Release()

	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("final ActiveCount = %d, want 0", got)
	}
}

func TestParseLimiter_RejectsWhenFull(t *testing.T) {
	limiter := NewParseLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	if err := limiter.Acquire(ctx); !errors.Is(err, ErrTooManyParses) {
		t.Errorf("expected ErrTooManyParses, got %v", err)
	}
	if limiter.TryAcquire() {
		t.Error("TryAcquire should fail when full")
		limiter.Release()
	}
}

func TestParseLimiter_ContextCancellation(t *testing.T) {
	limiter := NewParseLimiter(1, 5*time.Second)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- limiter.Acquire(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Acquire did not return after cancellation")
	}
}

func TestParseLimiter_ConcurrentAccess(t *testing.T) {
	const maxConcurrent = 3
	limiter := NewParseLimiter(maxConcurrent, time.Second)

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		maxObserved int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer limiter.Release()

			mu.Lock()
			if n := limiter.ActiveCount(); n > maxObserved {
				maxObserved = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
		}()
	}
	wg.Wait()

	if maxObserved > maxConcurrent {
		t.Errorf("observed %d concurrent parses, max %d", maxObserved, maxConcurrent)
	}
}

func TestParseLimiter_WaitForDrain(t *testing.T) {
	limiter := NewParseLimiter(2, time.Second)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- limiter.WaitForDrain(context.Background())
	}()

	select {
	case <-done:
		t.Fatal("WaitForDrain returned while a parse was active")
	case <-time.After(60 * time.Millisecond):
	}

	limiter.Release()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForDrain returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("WaitForDrain did not complete after release")
	}
}

func TestParseLimiter_DefaultValues(t *testing.T) {
	limiter := NewParseLimiter(0, 0)
	if got := limiter.MaxConcurrent(); got != DefaultMaxConcurrentParses {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentParses)
	}
}
