package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsroom/api-go/utils"
	"github.com/newsroom/api-go/workflow"
)

// RequireRoles gates a route group to the given roles. Ownership checks are
// data-dependent and stay in the handlers; this only answers the static
// role question.
func RequireRoles(roles ...workflow.Role) gin.HandlerFunc {
	allowed := make(map[workflow.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		user := utils.GetUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		if !allowed[user.Role] {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
