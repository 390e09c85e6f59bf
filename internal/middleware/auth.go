package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/jwt"
	"github.com/terravita/core/internal/pkg/response"
	sessionpkg "github.com/terravita/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
	ContextKeySID    = "session_id"
)

// Auth returns a middleware that enforces JWT session authentication and
// loads the caller's role into the request context.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := resolveUser(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyRole, user.Role)
		c.Set(ContextKeySID, claims.SessionID)
		sessionpkg.Touch(db, user.ID, claims.SessionID)
		c.Next()
	}
}

// OptionalAuth loads the user if a valid token is present but never blocks.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, claims, err := resolveUser(db, extractToken(c)); err == nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyRole, user.Role)
			c.Set(ContextKeySID, claims.SessionID)
			sessionpkg.Touch(db, user.ID, claims.SessionID)
		}
		c.Next()
	}
}

// RequireEditor gates a route group to roles allowed to edit the given
// content kind ("species", "areas", "news"). Must run after Auth.
func RequireEditor(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentRole(c).CanEdit(kind) {
			response.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route group to admins. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleAdmin {
			response.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

func resolveUser(db *gorm.DB, rawToken string) (*models.UserModel, *jwt.Claims, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, nil, err
	}
	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if !active {
		return nil, nil, errors.New("session expired or revoked")
	}

	var user models.UserModel
	if err := db.Select("id, role").First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, nil, err
	}
	return &user, claims, nil
}

// CurrentUserID extracts the authenticated user ID from context (0 when
// unauthenticated).
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(uint)
	return id
}

// CurrentRole extracts the authenticated role from context.
func CurrentRole(c *gin.Context) models.Role {
	v, _ := c.Get(ContextKeyRole)
	role, _ := v.(models.Role)
	return role
}

// CurrentSessionID extracts the session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	sid, _ := v.(string)
	return sid
}

// IsAuthenticated reports whether the request carries a valid user.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != 0
}

// NormalizeToken strips the Bearer prefix and surrounding whitespace.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		return h
	}
	if q := c.Query("token"); q != "" {
		return q
	}
	cookie, _ := c.Cookie("token")
	return cookie
}
