// Package pool runs an operation over a slice with a bounded number of
// concurrent workers, keeping results index-aligned with the input.
package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run applies op to every item with at most width concurrent calls.
//
// The returned slice has the same length and index correspondence as items.
// An op failure is recorded as a nil result at that index; it never cancels
// sibling work and Run itself never returns early. Per-item timeouts are the
// op's (or its underlying client's) responsibility.
func Run[T, R any](ctx context.Context, items []T, width int, op func(context.Context, T) (R, error)) []*R {
	results := make([]*R, len(items))
	if len(items) == 0 {
		return results
	}
	if width <= 0 {
		width = 1
	}
	if width > len(items) {
		width = len(items)
	}

	g := new(errgroup.Group)
	g.SetLimit(width)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := op(ctx, item)
			if err != nil {
				return nil // failure isolated to this slot
			}
			results[i] = &r
			return nil
		})
	}
	_ = g.Wait()
	return results
}
