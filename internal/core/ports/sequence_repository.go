package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// SequenceRepository reads the identifiers already issued for a scope. Both
// calls must run inside the transaction that inserts the new identifier.
type SequenceRepository interface {
	// Lock serializes allocators of prefix until the transaction ends. Stores
	// without advisory locks may implement it as a no-op and rely on the
	// unique constraint plus retry.
	Lock(ctx context.Context, prefix string) error

	// ListIDs returns every identifier of scope that starts with prefix.
	ListIDs(ctx context.Context, scope kernel.SequenceScope, prefix string) ([]string, error)
}
