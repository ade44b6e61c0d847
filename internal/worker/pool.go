// Package worker provides a bounded pool for CPU-heavy inference calls so
// that a burst of sessions cannot saturate the process. I/O-bound backends
// park on network wait; local model inference must go through the pool.
package worker

import "context"

// Pool is a counting semaphore over goroutine-executed work.
type Pool struct {
	sem chan struct{}
}

// NewPool creates a pool allowing at most size concurrent invocations.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 4
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Do runs fn once a slot is available, blocking until then or until ctx is
// done. The slot is released when fn returns.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.sem }()
	return fn()
}

// InFlight reports the number of currently held slots.
func (p *Pool) InFlight() int {
	return len(p.sem)
}
