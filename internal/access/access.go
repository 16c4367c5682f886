// Package access is the authorization engine. Every decision is a pure
// function of (acting user, action, optional target resource); a nil user
// is an anonymous caller.
package access

import (
	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
)

// Action classifies an operation independently of HTTP verbs.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Safe reports whether the action never mutates state.
func (a Action) Safe() bool {
	return a == ActionRead
}

func RoleOf(u *entity.User) entity.Role {
	if u == nil {
		return entity.RoleUser
	}
	return u.Role
}

// IsAdmin is true for the admin role or any staff account. Both signals
// grant the same privilege; callers must never test the raw fields.
func IsAdmin(u *entity.User) bool {
	return u != nil && (u.Role == entity.RoleAdmin || u.IsStaff)
}

func IsModerator(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleModerator
}

// Policy is an endpoint-level check, evaluated before a target instance
// is known.
type Policy func(u *entity.User, action Action) error

// AdminOnly permits admins and nobody else, for any action.
func AdminOnly(u *entity.User, _ Action) error {
	if u == nil {
		return apperr.Unauthorized("authentication required")
	}
	if !IsAdmin(u) {
		return apperr.Forbidden("admin privileges required")
	}
	return nil
}

// AdminOrReadOnly permits reads for everyone, writes for admins.
func AdminOrReadOnly(u *entity.User, action Action) error {
	if action.Safe() {
		return nil
	}
	return AdminOnly(u, action)
}

// AuthenticatedOrReadOnly permits reads for everyone, writes for any
// authenticated user.
func AuthenticatedOrReadOnly(u *entity.User, action Action) error {
	if action.Safe() {
		return nil
	}
	if u == nil {
		return apperr.Unauthorized("authentication required")
	}
	return nil
}

// CanAct is the instance-level check for mutations of an existing record.
// Precedence: reads always pass, admin overrides everything, moderators
// override authorship for reviews and comments only, otherwise only the
// author may act.
func CanAct(u *entity.User, action Action, res entity.Resource) error {
	if action.Safe() {
		return nil
	}
	if u == nil {
		return apperr.Unauthorized("authentication required")
	}
	if IsAdmin(u) {
		return nil
	}
	if IsModerator(u) {
		if k := res.Kind(); k == entity.KindReview || k == entity.KindComment {
			return nil
		}
	}
	if res.OwnerID() != "" && res.OwnerID() == u.ID {
		return nil
	}
	return apperr.Forbidden("insufficient privileges for this resource")
}
