// Package consignee holds the canonical consignee directory entry. Free-text
// counterpart names are linked to entries only through fuzzy matching.
package consignee

import (
	"strings"

	"freight/internal/pkg/errs"
)

type Entry struct {
	code string
	name string
}

func NewEntry(code, name string) (Entry, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return Entry{}, errs.NewValueIsRequiredError("consignee code")
	}
	if name == "" {
		return Entry{}, errs.NewValueIsRequiredError("consignee name")
	}
	return Entry{code: code, name: name}, nil
}

func (e Entry) Code() string { return e.code }
func (e Entry) Name() string { return e.name }
