package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
	CtxRoleKey     = "role"
)

// Identity is the authenticated caller attached by Authenticate.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// Authenticate reads the bearer access token, validates it, and injects the
// caller identity into the context. Any failure is a 401.
func Authenticate(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWith(c, domain.NewUnauthorizedError("missing access token"))
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			abortWith(c, domain.NewUnauthorizedError("invalid access token"))
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Authenticate.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	uid := c.GetString(CtxUserIDKey)
	if uid == "" {
		return Identity{}, false
	}
	return Identity{
		UserID:   uid,
		Username: c.GetString(CtxUsernameKey),
		Role:     c.GetString(CtxRoleKey),
	}, true
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
