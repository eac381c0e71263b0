package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
)

// HasRole reports whether role is one of allowed.
func HasRole(role string, allowed ...vo.Role) bool {
	return slices.Contains(allowed, vo.Role(role))
}

// IsSelf reports whether the caller is the user identified by targetID.
func IsSelf(id Identity, targetID string) bool {
	return id.UserID != "" && id.UserID == targetID
}

// RequireRoles must run after Authenticate. A caller whose role is not in
// roles gets a 403.
func RequireRoles(roles ...vo.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			abortWith(c, domain.ErrUnauthorized)
			return
		}
		if !HasRole(id.Role, roles...) {
			abortWith(c, domain.NewForbiddenError("Forbidden resource"))
			return
		}
		c.Next()
	}
}

// RequireSelfOrRoles passes when the :param path value is the caller's own
// id, or the caller holds one of roles.
func RequireSelfOrRoles(param string, roles ...vo.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			abortWith(c, domain.ErrUnauthorized)
			return
		}
		if !IsSelf(id, c.Param(param)) && !HasRole(id.Role, roles...) {
			abortWith(c, domain.NewForbiddenError("Forbidden resource"))
			return
		}
		c.Next()
	}
}
