// Package memory holds in-memory repository implementations backing
// the service tests. They honor the same contracts as the PostgreSQL
// implementations, including conditional-write semantics.
package memory

import (
	"context"
)

type txRunner struct{}

// NewTxRunner returns a pass-through transaction boundary. The memory
// stores apply each write atomically under their own lock, so grouping
// adds nothing; rollback of multi-step operations is not simulated.
func NewTxRunner() *txRunner {
	return &txRunner{}
}

func (t *txRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
