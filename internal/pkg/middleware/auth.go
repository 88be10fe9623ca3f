package middleware

import (
	"net/http"
	"strings"

	userModel "course_market/internal/domain/user/model"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/pkg/response"
	"course_market/pkg/utils"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	CtxUserID  = "userID"
	CtxRole    = "role"
	CtxSegment = "segment"
)

// AuthMiddleware JWT认证中间件
// 验证 Token 后加载用户记录，根据注册时间推导用户分层（新用户/老用户）
// 并写入上下文，供促销匹配使用
func AuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Authorization header is required")
			c.Abort()
			return
		}

		// 检查格式 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := repo.GetByID(claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrUserNotFound, "User not found")
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxRole, user.Role)
		c.Set(CtxSegment, user.Segment())

		c.Next()
	}
}

// AdminMiddleware 管理员权限中间件
func AdminMiddleware() gin.HandlerFunc {
	return requireRole(userModel.RoleAdmin)
}

// CreatorMiddleware 创作者权限中间件（管理员同样放行）
func CreatorMiddleware() gin.HandlerFunc {
	return requireRole(userModel.RoleCreator, userModel.RoleAdmin)
}

func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.Error(c, http.StatusUnauthorized, response.ErrNoPermission, "Unauthorized")
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		for _, r := range roles {
			if roleStr == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Insufficient role")
		c.Abort()
	}
}

// GetUserID 从上下文取当前用户ID
func GetUserID(c *gin.Context) string {
	val, _ := c.Get(CtxUserID)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// GetSegment 从上下文取当前用户分层
func GetSegment(c *gin.Context) userModel.Segment {
	val, _ := c.Get(CtxSegment)
	if s, ok := val.(userModel.Segment); ok {
		return s
	}
	return userModel.SegmentLongTermUser
}
