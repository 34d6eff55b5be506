package middleware

import (
	"net/http"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface so this package does not depend on the
// concrete enforcer.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// RBACAuthorize maps the is_admin claim onto a role and asks the enforcer.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("user_id_validated"); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		role := rbac.RoleEmployee
		if c.GetBool("is_admin") {
			role = rbac.RoleAdmin
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
