package roles

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Role is one of the four account tiers. The zero value is not a valid role.
type Role string

const (
	User    Role = "user"
	Scholar Role = "scholar"
	Manager Role = "manager"
	Admin   Role = "admin"
)

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrSelfDemotion    = errors.New("cannot reduce your own role")
	ErrNotRoleManager  = errors.New("only admin and manager can change roles")
	ErrRoleOutOfBounds = errors.New("insufficient privilege for requested role")
)

var ranks = map[Role]int{
	User:    1,
	Scholar: 2,
	Manager: 3,
	Admin:   4,
}

// Rank returns the position of r in the strict total order
// user < scholar < manager < admin. Unknown roles rank below user.
func Rank(r Role) int {
	return ranks[r]
}

// Valid reports whether r is one of the four known roles.
func Valid(r Role) bool {
	_, ok := ranks[r]
	return ok
}

// Parse converts a wire string to a Role.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !Valid(r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// AtLeast reports whether r carries at least the privilege of min.
func AtLeast(r, min Role) bool {
	return Rank(r) >= Rank(min)
}

// CanChangeRole decides whether an actor may move a target account to the
// requested role. It is pure: callers apply the change only on a nil return.
//
// Rules: an actor may never demote themselves; only managers and admins may
// change roles at all; an admin may grant manager, scholar or user (never a
// second admin); a manager may grant scholar or user.
func CanChangeRole(acting Role, actingID uuid.UUID, targetCurrent Role, targetID uuid.UUID, requested Role) error {
	if !Valid(requested) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, requested)
	}
	if actingID == targetID && Rank(requested) < Rank(targetCurrent) {
		return ErrSelfDemotion
	}
	switch acting {
	case Admin:
		if requested == Admin {
			return fmt.Errorf("%w: admin can only grant manager, scholar, or user", ErrRoleOutOfBounds)
		}
		return nil
	case Manager:
		if requested == Admin || requested == Manager {
			return fmt.Errorf("%w: manager can only grant scholar or user", ErrRoleOutOfBounds)
		}
		return nil
	default:
		return ErrNotRoleManager
	}
}
