package seeder

import (
	"context"
)

// batcher buffers rows and hands them to flush whenever size rows are pending.
type batcher struct {
	size  int
	rows  [][]any
	total int
	flush func(ctx context.Context, rows [][]any) error
}

func newBatcher(size int, flush func(ctx context.Context, rows [][]any) error) *batcher {
	if size < 1 {
		size = 1
	}
	return &batcher{
		size:  size,
		rows:  make([][]any, 0, size),
		flush: flush,
	}
}

func (b *batcher) Add(ctx context.Context, row []any) error {
	b.rows = append(b.rows, row)
	if len(b.rows) >= b.size {
		return b.Flush(ctx)
	}
	return nil
}

// Flush writes any pending rows.
func (b *batcher) Flush(ctx context.Context) error {
	if len(b.rows) == 0 {
		return nil
	}
	if err := b.flush(ctx, b.rows); err != nil {
		return err
	}
	b.total += len(b.rows)
	b.rows = b.rows[:0]
	return nil
}

// Total is the number of rows flushed so far.
func (b *batcher) Total() int {
	return b.total
}
