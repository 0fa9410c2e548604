package middleware

import (
	"context"
	"net/http"
	"strings"

	"megablog/internal/domain"
	jwtsvc "megablog/internal/pkg/jwt"
	"megablog/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserLoader resolves the authenticated user once the token checks out.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// SessionAuth resolves the viewer identity from the access token, carried
// either in the accessToken cookie or a bearer header. On success the
// sanitized user is attached to the context; every failure mode is a 401.
// The middleware never refreshes; refresh is a separate explicit endpoint.
func SessionAuth(jwt *jwtsvc.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No access token provided")
			return
		}

		claims, err := jwt.ParseAccessToken(tokenStr)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Access token is invalid or expired")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No such user")
			return
		}
		user.Sanitize()

		c.Set("user_id", user.ID)
		c.Set("user", user)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// CurrentUser returns the viewer attached by SessionAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
