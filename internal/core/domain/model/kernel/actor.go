package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Role is the functional group an actor belongs to. Notifications are
// addressed to roles rather than individuals.
type Role string

const (
	RoleOperations Role = "Operations"
	RoleClearance  Role = "Clearance"
	RoleAccounts   Role = "Accounts"
	RoleAdmin      Role = "Admin"
)

// ParseRole matches case-insensitively.
func ParseRole(raw string) (Role, error) {
	for _, r := range []Role{RoleOperations, RoleClearance, RoleAccounts, RoleAdmin} {
		if strings.EqualFold(string(r), strings.TrimSpace(raw)) {
			return r, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", raw))
}

// Actor is the identity supplied by the authentication collaborator.
type Actor struct {
	name string
	role Role
}

func NewActor(name string, role Role) (Actor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor name")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{name: name, role: role}, nil
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) Role() Role {
	return a.role
}

// Validate rejects the zero value.
func (a Actor) Validate() error {
	if a.name == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}
