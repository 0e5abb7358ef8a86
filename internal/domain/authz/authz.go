package authz

import (
	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
)

// Capability checks are called uniformly before service operations instead
// of ad-hoc attribute probing inside each method.

// RequireAdmin permits only active superusers
func RequireAdmin(actor *entity.User) error {
	if actor == nil || !actor.IsActive || !actor.IsSuperuser {
		return errs.NewForbidden("only an admin (superuser) may perform this action")
	}
	return nil
}

// RequireSelfOrAdmin permits the resource owner or an active superuser
func RequireSelfOrAdmin(actor *entity.User, ownerID uint64) error {
	if actor == nil || !actor.IsActive {
		return errs.NewForbidden("only an admin or the owner may perform this action")
	}
	if actor.IsSuperuser || actor.ID == ownerID {
		return nil
	}
	return errs.NewForbidden("only an admin or the owner may perform this action")
}
