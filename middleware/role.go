package middleware

import (
	"freelancehub/models"
	"freelancehub/services/errs"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the listed roles. It must run
// after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			utils.RespondError(c, errs.Unauthorized("role", "authentication required"))
			c.Abort()
			return
		}
		for _, r := range roles {
			if identity.Role == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, errs.Forbidden("role", "this action requires role %v", roles))
		c.Abort()
	}
}
