// file: controllers/comment_controller.go
package controllers

import (
	"RecipeBattle/database"
	"RecipeBattle/models"
	"RecipeBattle/services"
	"RecipeBattle/utils"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"strings"
)

// AddComment 发表评论，可附带 1-5 星评分
func AddComment(c *gin.Context) {
	recipeID, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)

	var req struct {
		Content string `json:"content" binding:"required"`
		Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "评论内容不能为空")
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, recipeID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "菜谱不存在")
		return
	}

	comment := models.Comment{
		RecipeID: recipe.ID,
		UserID:   userID,
		Content:  strings.TrimSpace(req.Content),
		Rating:   req.Rating,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Comment added successfully", gin.H{"id": comment.ID})
}

func ListComments(c *gin.Context) {
	recipeID, _ := strconv.Atoi(c.Param("id"))

	var comments []models.Comment
	if err := database.DB.Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at desc").
		Find(&comments).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"total":    len(comments),
		"comments": comments,
	})
}

// DeleteComment 评论作者本人或管理员可删除
func DeleteComment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)
	role := c.MustGet("user_role").(models.UserRole)

	var comment models.Comment
	if err := database.DB.First(&comment, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "评论不存在")
		return
	}
	if comment.UserID != userID && role != models.RoleAdmin {
		utils.Error(c, http.StatusForbidden, services.KindForbidden, "只能删除自己的评论")
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Comment deleted successfully", nil)
}
