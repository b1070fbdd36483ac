package middleware

import (
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token (header or, for websocket
// handshakes, the token query parameter) and stores the claims.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// SessionChecker is satisfied by AuthService; stated as an interface so
// the middleware package stays free of service imports.
type SessionChecker interface {
	IsAuthenticated(userID uint) bool
}

// SessionMiddleware rejects tokens whose server-side session flag has
// been cleared by logout or a full reset.
func SessionMiddleware(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil || !sessions.IsAuthenticated(claims.UserID) {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleMiddleware gates a route to the given roles. Admins pass any
// role check.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := user.Role == model.Admin
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware stamps last-seen off the request path.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			go repo.UpdateLastSeen(claims.UserID)
		}
		c.Next()
	}
}
