package services

import (
	"time"

	"freight/internal/core/domain/model/kernel"
)

// NextSequenceID returns the identifier after the highest one in existing
// for the period of scope that contains at. Identifiers outside the period,
// or with a malformed suffix, are ignored. Gaps are not filled.
func NextSequenceID(scope kernel.SequenceScope, at time.Time, existing []string) (kernel.SequenceID, error) {
	prefix, err := scope.Prefix(at)
	if err != nil {
		return kernel.SequenceID{}, err
	}
	highest := 0
	for _, id := range existing {
		if n, ok := kernel.SequenceNumber(id, prefix); ok && n > highest {
			highest = n
		}
	}
	return kernel.NewSequenceID(scope, at, highest+1)
}
