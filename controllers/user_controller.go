// file: controllers/user_controller.go
package controllers

import (
	"RecipeBattle/database"
	"RecipeBattle/models"
	"RecipeBattle/services"
	"RecipeBattle/utils"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Email    string `json:"email" binding:"required,email"`
		Bio      string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&user).Error; err == nil {
		utils.Error(c, http.StatusConflict, services.KindConflict, "用户名或邮箱已被注册")
		return
	}

	newUser := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Bio:      req.Bio,
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "User registered successfully", gin.H{
		"id":       newUser.ID,
		"username": newUser.Username,
		"level":    newUser.Level,
		"role":     newUser.Role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "用户不存在或密码错误")
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "用户不存在或密码错误")
		return
	}

	if user.Status == models.StatusBanned {
		utils.Error(c, http.StatusForbidden, services.KindForbidden, "用户已被封禁")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"level":    user.Level,
			"role":     user.Role,
		},
	})
}

// --- 需要登录的接口 ---

func GetUserDetail(c *gin.Context) {
	targetUserID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "无效的用户ID")
		return
	}

	var user models.User
	if err := database.DB.First(&user, targetUserID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "用户不存在")
		return
	}

	var recipeCount int64
	database.DB.Model(&models.Recipe{}).Where("user_id = ?", user.ID).Count(&recipeCount)

	utils.Success(c, "success", gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"bio":          user.Bio,
		"avatar_url":   user.AvatarURL,
		"level":        user.Level,
		"xp":           user.XP,
		"role":         user.Role,
		"recipe_count": recipeCount,
		"created_at":   user.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// UpdateUser 只能修改自己的资料
func UpdateUser(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)
	if uint32(targetUserID) != userID {
		utils.Error(c, http.StatusForbidden, services.KindForbidden, "只能修改自己的资料")
		return
	}

	var req struct {
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
		Password  *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "用户不存在")
		return
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "密码至少 8 位")
			return
		}
		user.Password = *req.Password
	}

	if err := database.DB.Save(&user).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "User updated successfully", nil)
}

// --- 管理员接口 ---

func AdminGetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	database.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	database.DB.Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&users)

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"users": users,
	})
}

func AdminUpdateUserRole(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Role models.UserRole `json:"role" binding:"required,oneof=user moderator admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", targetUserID).Update("role", req.Role)
	if result.Error != nil {
		utils.ServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "用户不存在")
		return
	}
	utils.Success(c, "User role updated successfully", nil)
}

// AdminUpdateUserLevel 等级直接决定凭证是否自动过审，只有管理员可改
func AdminUpdateUserLevel(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Level *int `json:"level" binding:"required,min=1,max=99"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", targetUserID).Update("level", *req.Level)
	if result.Error != nil {
		utils.ServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "用户不存在")
		return
	}
	utils.Success(c, "User level updated successfully", nil)
}

func AdminUpdateUserStatus(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status models.UserStatus `json:"status" binding:"required,oneof=active banned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", targetUserID).Update("status", req.Status)
	if result.Error != nil {
		utils.ServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "用户不存在")
		return
	}
	utils.Success(c, "User status updated successfully", nil)
}

func AdminDeleteUser(c *gin.Context) {
	targetUserID, _ := strconv.Atoi(c.Param("id"))
	if err := database.DB.Delete(&models.User{}, targetUserID).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}
