// file: middlewares/auth.go
package middlewares

import (
	"RecipeBattle/models"
	"RecipeBattle/services"
	"RecipeBattle/utils"
	"github.com/gin-gonic/gin"
	"net/http"
	"strings"
)

// JWTAuthMiddleware 验证用户是否登录
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, services.KindForbidden, "请求头中 Authorization 为空")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Error(c, http.StatusUnauthorized, services.KindForbidden, "Authorization 格式有误")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, services.KindForbidden, "无效的 Token")
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RoleAuthMiddleware 验证用户角色权限，admin 拥有所有权限。
// 所有能力判定统一走这里，不在各路由里散落布尔检查。
func RoleAuthMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get("user_role")
		if !exists {
			utils.Error(c, http.StatusForbidden, services.KindForbidden, "无法获取用户角色信息")
			c.Abort()
			return
		}

		role := roleAny.(models.UserRole)

		hasPermission := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole {
				hasPermission = true
				break
			}
		}

		// admin 拥有所有权限
		if role == models.RoleAdmin {
			hasPermission = true
		}

		if !hasPermission {
			utils.Error(c, http.StatusForbidden, services.KindForbidden, "权限不足")
			c.Abort()
			return
		}
		c.Next()
	}
}

// JWTTryAuthMiddleware 尝试解析Token，即使失败也继续执行
func JWTTryAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("user_role", claims.Role)
		}

		c.Next()
	}
}
