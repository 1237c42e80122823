package middleware

import (
	"context"
	"strings"

	"freelancehub/models"
	"freelancehub/services/errs"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the caller's models.Identity.
const IdentityKey = "identity"

// TokenVerifier resolves a bearer token to the live session's identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (models.Identity, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// JWTAuthMiddleware rejects requests without a valid, live bearer token.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, errs.Unauthorized("auth", "missing or invalid Authorization header"))
			c.Abort()
			return
		}
		identity, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by JWTAuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}
