package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunPreservesOrderAndIsolatesFailure(t *testing.T) {
	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}

	results := Run(context.Background(), items, 3, func(ctx context.Context, n int) (string, error) {
		if n == 5 {
			return "", fmt.Errorf("item %d exploded", n)
		}
		return fmt.Sprintf("ok-%d", n), nil
	})

	if len(results) != 10 {
		t.Fatalf("len(results) = %d, want 10", len(results))
	}
	for i, r := range results {
		if i == 5 {
			if r != nil {
				t.Errorf("results[5] = %q, want nil for the failed item", *r)
			}
			continue
		}
		if r == nil {
			t.Errorf("results[%d] = nil, want ok-%d", i, i)
			continue
		}
		if want := fmt.Sprintf("ok-%d", i); *r != want {
			t.Errorf("results[%d] = %q, want %q", i, *r, want)
		}
	}
}

func TestRunRespectsWidth(t *testing.T) {
	var inFlight, peak int64
	var mu sync.Mutex

	items := make([]int, 20)
	Run(context.Background(), items, 3, func(ctx context.Context, _ int) (int, error) {
		cur := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return 0, nil
	})

	mu.Lock()
	defer mu.Unlock()
	if peak > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", peak)
	}
	if peak == 0 {
		t.Error("op never ran")
	}
}

func TestRunEmptyInput(t *testing.T) {
	results := Run(context.Background(), nil, 4, func(ctx context.Context, _ int) (int, error) {
		t.Error("op called for empty input")
		return 0, nil
	})
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestRunWidthLargerThanInput(t *testing.T) {
	results := Run(context.Background(), []int{1, 2}, 16, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})
	if len(results) != 2 || results[0] == nil || results[1] == nil {
		t.Fatalf("unexpected results %v", results)
	}
	if *results[0] != 2 || *results[1] != 4 {
		t.Errorf("got %d, %d; want 2, 4", *results[0], *results[1])
	}
}

func TestRunAllFailures(t *testing.T) {
	results := Run(context.Background(), []int{1, 2, 3}, 2, func(ctx context.Context, n int) (int, error) {
		return 0, fmt.Errorf("no dice")
	})
	for i, r := range results {
		if r != nil {
			t.Errorf("results[%d] = %v, want nil", i, *r)
		}
	}
}
