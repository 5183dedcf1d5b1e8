// Package sequence allocates scope identifiers (SH-, DN-, VH-) by scanning the
// identifiers already issued for the current period. Allocation must run in
// the transaction that inserts the numbered row; a concurrent allocator that
// slips past the lock surfaces as a unique violation on insert, which callers
// retry once.
package sequence

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

type Allocator struct{}

func NewAllocator() Allocator {
	return Allocator{}
}

// Next returns the identifier following the highest one issued for scope in
// the period containing at.
func (Allocator) Next(ctx context.Context, repo ports.SequenceRepository, scope kernel.SequenceScope, at time.Time) (kernel.SequenceID, error) {
	prefix, err := scope.Prefix(at)
	if err != nil {
		return kernel.SequenceID{}, err
	}
	if err := repo.Lock(ctx, prefix); err != nil {
		return kernel.SequenceID{}, err
	}
	ids, err := repo.ListIDs(ctx, scope, prefix)
	if err != nil {
		return kernel.SequenceID{}, err
	}
	return services.NextSequenceID(scope, at, ids)
}
