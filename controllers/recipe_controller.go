// file: controllers/recipe_controller.go
package controllers

import (
	"RecipeBattle/database"
	"RecipeBattle/models"
	"RecipeBattle/services"
	"RecipeBattle/utils"
	"database/sql"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"strings"
)

func CreateRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint32)

	var req struct {
		Title       string `json:"title" binding:"required,max=150"`
		Description string `json:"description"`
		Ingredients string `json:"ingredients"`
		Steps       string `json:"steps"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImageURL:    req.ImageURL,
	}
	if err := database.DB.Create(&recipe).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Recipe created successfully", gin.H{"id": recipe.ID})
}

// ListRecipes 菜谱列表，支持关键词模糊搜索和分页
func ListRecipes(c *gin.Context) {
	kw := strings.TrimSpace(c.Query("keyword"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Recipe{}).Preload("User")
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if uid, err := strconv.Atoi(userIDStr); err == nil && uid > 0 {
			db = db.Where("user_id = ?", uid)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	var recipes []models.Recipe
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&recipes).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"total":   total,
		"page":    page,
		"limit":   limit,
		"recipes": recipes,
	})
}

func GetRecipeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var recipe models.Recipe
	if err := database.DB.Preload("User").First(&recipe, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "菜谱不存在")
		return
	}

	var likeCount int64
	database.DB.Model(&models.RecipeLike{}).Where("recipe_id = ?", recipe.ID).Count(&likeCount)

	var commentCount int64
	database.DB.Model(&models.Comment{}).Where("recipe_id = ?", recipe.ID).Count(&commentCount)

	// 平均评分只统计带评分的评论
	var avgRating sql.NullFloat64
	database.DB.Model(&models.Comment{}).
		Where("recipe_id = ? AND rating IS NOT NULL", recipe.ID).
		Select("AVG(rating)").Scan(&avgRating)

	resp := gin.H{
		"recipe":        recipe,
		"like_count":    likeCount,
		"comment_count": commentCount,
	}
	if avgRating.Valid {
		resp["avg_rating"] = avgRating.Float64
	}

	utils.Success(c, "success", resp)
}

// UpdateRecipe 作者本人或管理员可修改
func UpdateRecipe(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)
	role := c.MustGet("user_role").(models.UserRole)

	var recipe models.Recipe
	if err := database.DB.First(&recipe, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "菜谱不存在")
		return
	}
	if recipe.UserID != userID && role != models.RoleAdmin {
		utils.Error(c, http.StatusForbidden, services.KindForbidden, "只能修改自己的菜谱")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Ingredients *string `json:"ingredients"`
		Steps       *string `json:"steps"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "标题不能为空")
			return
		}
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Steps != nil {
		recipe.Steps = *req.Steps
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}

	if err := database.DB.Save(&recipe).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Recipe updated successfully", nil)
}

// DeleteRecipe 作者本人或管理员可删除，级联清理评论、点赞、参赛记录和相关投票
func DeleteRecipe(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)
	role := c.MustGet("user_role").(models.UserRole)

	var recipe models.Recipe
	if err := database.DB.First(&recipe, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "菜谱不存在")
		return
	}
	if recipe.UserID != userID && role != models.RoleAdmin {
		utils.Error(c, http.StatusForbidden, services.KindForbidden, "只能删除自己的菜谱")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.BattleVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.BattleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Recipe deleted successfully", nil)
}

// ToggleRecipeLike 点赞/取消点赞
func ToggleRecipeLike(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)

	var recipe models.Recipe
	if err := database.DB.First(&recipe, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "菜谱不存在")
		return
	}

	var existing models.RecipeLike
	err := database.DB.Where("recipe_id = ? AND user_id = ?", recipe.ID, userID).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			utils.ServiceError(c, err)
			return
		}
		utils.Success(c, "Like removed", gin.H{"liked": false})
		return
	}

	like := models.RecipeLike{RecipeID: recipe.ID, UserID: userID}
	if err := database.DB.Create(&like).Error; err != nil {
		// (recipe_id, user_id) 唯一索引兜底并发重复点赞
		utils.Success(c, "Already liked", gin.H{"liked": true})
		return
	}
	utils.Success(c, "Liked", gin.H{"liked": true})
}
