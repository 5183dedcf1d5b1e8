package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSequenceIDIsNotConstructed = errors.New("SequenceID must be created via NewSequenceID or ParseSequenceID")

// SequenceScope names a family of human-readable identifiers. Each scope has
// its own prefix and reset period.
type SequenceScope int

const (
	UnknownScope SequenceScope = iota
	// JobScope numbers shipments, reset yearly.
	JobScope
	// DeliveryNoteScope numbers delivery notes, reset monthly.
	DeliveryNoteScope
	// VoucherScope numbers payment vouchers, reset yearly.
	VoucherScope
)

func (s SequenceScope) String() string {
	switch s {
	case JobScope:
		return "job"
	case DeliveryNoteScope:
		return "delivery_note"
	case VoucherScope:
		return "voucher"
	default:
		return "unknown"
	}
}

// Validate rejects UnknownScope and out-of-range values.
func (s SequenceScope) Validate() error {
	if s < JobScope || s > VoucherScope {
		return errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%d is not a valid sequence scope", s))
	}
	return nil
}

// Prefix returns the identifier prefix of the period containing at,
// e.g. "SH-2025-", "DN-2025-03-", "VH-2025-".
func (s SequenceScope) Prefix(at time.Time) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	switch s {
	case JobScope:
		return fmt.Sprintf("SH-%d-", at.Year()), nil
	case DeliveryNoteScope:
		return fmt.Sprintf("DN-%d-%02d-", at.Year(), int(at.Month())), nil
	default:
		return fmt.Sprintf("VH-%d-", at.Year()), nil
	}
}

// SequenceID is a scope-prefixed, zero-padded identifier such as DN-2025-03-007.
type SequenceID struct {
	scope  SequenceScope
	prefix string
	number int

	guard guard.ConstructorGuard
}

// NewSequenceID builds the identifier for number within the period containing at.
// Numbers start at 1.
func NewSequenceID(scope SequenceScope, at time.Time, number int) (SequenceID, error) {
	prefix, err := scope.Prefix(at)
	if err != nil {
		return SequenceID{}, err
	}
	if number < 1 {
		return SequenceID{}, errs.NewValueIsOutOfRangeError("sequence number", number, 1, "unbounded")
	}
	return SequenceID{scope: scope, prefix: prefix, number: number, guard: guard.NewConstructorGuard()}, nil
}

// ParseSequenceID reads an identifier previously produced for scope.
func ParseSequenceID(scope SequenceScope, raw string) (SequenceID, error) {
	if err := scope.Validate(); err != nil {
		return SequenceID{}, err
	}
	idx := strings.LastIndex(raw, "-")
	if idx < 0 {
		return SequenceID{}, errs.NewValueIsInvalidErrorWithCause(scope.String()+" id", fmt.Errorf("%q has no sequence suffix", raw))
	}
	prefix := raw[:idx+1]
	number, ok := SequenceNumber(raw, prefix)
	if !ok || !strings.HasPrefix(prefix, scopeLetters(scope)) {
		return SequenceID{}, errs.NewValueIsInvalidErrorWithCause(scope.String()+" id", fmt.Errorf("%q is malformed", raw))
	}
	return SequenceID{scope: scope, prefix: prefix, number: number, guard: guard.NewConstructorGuard()}, nil
}

// SequenceNumber extracts the trailing numeric suffix of id after prefix.
// It reports false when id does not carry prefix or the suffix is not a positive number.
func SequenceNumber(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	suffix := id[len(prefix):]
	if suffix == "" || strings.ContainsFunc(suffix, func(r rune) bool { return r < '0' || r > '9' }) {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func scopeLetters(s SequenceScope) string {
	switch s {
	case JobScope:
		return "SH-"
	case DeliveryNoteScope:
		return "DN-"
	default:
		return "VH-"
	}
}

func (id SequenceID) Validate() error {
	return id.guard.Validate(ErrSequenceIDIsNotConstructed)
}

func (id SequenceID) Scope() SequenceScope {
	return id.scope
}

func (id SequenceID) Prefix() string {
	return id.prefix
}

func (id SequenceID) Number() int {
	return id.number
}

// String renders the identifier with a three-digit minimum suffix.
func (id SequenceID) String() string {
	return fmt.Sprintf("%s%03d", id.prefix, id.number)
}
