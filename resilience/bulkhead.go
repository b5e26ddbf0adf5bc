package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

var (
	// ErrBulkheadFull is returned when no slot is free and MaxWait is zero.
	ErrBulkheadFull = errors.New("bulkhead is full")
	// ErrBulkheadTimeout is returned when MaxWait passed without a free slot.
	ErrBulkheadTimeout = errors.New("bulkhead wait timeout")
)

// BulkheadConfig configures a Bulkhead.
type BulkheadConfig struct {
	// Name identifies the bulkhead in logs.
	Name string
	// MaxConcurrent is the number of slots. Defaults to 1.
	MaxConcurrent int
	// MaxWait bounds the wait for a slot. Zero rejects at once; negative
	// queues until the caller's context ends.
	MaxWait time.Duration
	// OnReject is called for every rejected call.
	OnReject func(name string)
}

// Bulkhead caps how many calls run at once. Speech uses a single slot so
// utterances queue instead of talking over each other.
type Bulkhead struct {
	config BulkheadConfig
	sem    *semaphore.Weighted
	inUse  atomic.Int64
}

// NewBulkhead returns a bulkhead with config.MaxConcurrent slots.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	config.MaxConcurrent = max(config.MaxConcurrent, 1)
	return &Bulkhead{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Execute runs fn in a slot.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	if err := b.acquire(ctx); err != nil {
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name)
		}
		return err
	}
	b.inUse.Add(1)
	defer func() {
		b.inUse.Add(-1)
		b.sem.Release(1)
	}()
	return fn()
}

// ExecuteWithResult is Execute for a function returning a value.
func ExecuteWithResult[T any](ctx context.Context, b *Bulkhead, fn func() (T, error)) (T, error) {
	var out T
	err := b.Execute(ctx, func() (err error) {
		out, err = fn()
		return err
	})
	return out, err
}

func (b *Bulkhead) acquire(ctx context.Context) error {
	if b.sem.TryAcquire(1) {
		return nil
	}
	switch {
	case b.config.MaxWait == 0:
		return ErrBulkheadFull
	case b.config.MaxWait < 0:
		return b.sem.Acquire(ctx, 1)
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.config.MaxWait)
	defer cancel()
	if err := b.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBulkheadTimeout
	}
	return nil
}

// InUse returns the number of occupied slots.
func (b *Bulkhead) InUse() int {
	return int(b.inUse.Load())
}

// MaxConcurrent returns the number of slots.
func (b *Bulkhead) MaxConcurrent() int {
	return b.config.MaxConcurrent
}
