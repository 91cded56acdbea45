package memory

import (
	"context"
	"sync"
)

// TxRunner serializes units of work against the in-memory stores. There is
// no rollback: a failing callback must not have mutated anything yet, which
// the services guarantee by validating before writing.
type TxRunner struct {
	mu sync.Mutex
}

// NewTxRunner creates a TxRunner.
func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

func (t *TxRunner) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
