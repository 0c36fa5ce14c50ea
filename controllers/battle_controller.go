// file: controllers/battle_controller.go
package controllers

import (
	"RecipeBattle/database"
	"RecipeBattle/dto"
	"RecipeBattle/metrics"
	"RecipeBattle/models"
	"RecipeBattle/services"
	"RecipeBattle/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"time"
)

var battleClock services.Clock = services.RealClock{}

// ListBattles 对战列表，状态实时计算
func ListBattles(c *gin.Context) {
	var battles []models.Battle
	if err := database.DB.Order("starts_at desc").Find(&battles).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	now := battleClock.Now()
	items := make([]gin.H, 0, len(battles))
	for i := range battles {
		b := &battles[i]
		items = append(items, gin.H{
			"id":        b.ID,
			"dish_name": b.DishName,
			"starts_at": b.StartsAt.Format("2006-01-02 15:04:05"),
			"ends_at":   b.EndsAt.Format("2006-01-02 15:04:05"),
			"status":    services.DeriveStatus(b, now),
		})
	}

	utils.Success(c, "success", gin.H{
		"total":   len(items),
		"battles": items,
	})
}

// GetBattleDetail 对战详情，附实时状态与剩余时间
func GetBattleDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var battle models.Battle
	if err := database.DB.First(&battle, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "对战不存在")
		return
	}

	now := battleClock.Now()
	status := services.DeriveStatus(&battle, now)

	var remainingTime string
	switch status {
	case models.BattleStatusUpcoming:
		remainingTime = battle.StartsAt.Sub(now).Round(time.Second).String()
	case models.BattleStatusActive:
		remainingTime = battle.EndsAt.Sub(now).Round(time.Second).String()
	default:
		remainingTime = "0s"
	}

	var entryCount int64
	database.DB.Model(&models.BattleEntry{}).Where("battle_id = ?", battle.ID).Count(&entryCount)

	utils.Success(c, "success", gin.H{
		"id":             battle.ID,
		"dish_name":      battle.DishName,
		"description":    battle.Description,
		"rules":          battle.Rules,
		"starts_at":      battle.StartsAt.Format("2006-01-02 15:04:05"),
		"ends_at":        battle.EndsAt.Format("2006-01-02 15:04:05"),
		"status":         status,
		"remaining_time": remainingTime,
		"entry_count":    entryCount,
		"created_by":     battle.CreatedBy,
	})
}

// EnterBattle 报名参赛
func EnterBattle(c *gin.Context) {
	battleID, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)

	var req dto.EnterBattleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.RecipeID == 0 {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "缺少必填字段 recipe_id")
		return
	}

	entry, err := services.EnterBattle(database.DB, battleClock, uint32(battleID), req.RecipeID, userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Entry submitted successfully", entry)
}

// ListBattleEntries 参赛条目及票数
func ListBattleEntries(c *gin.Context) {
	battleID, _ := strconv.Atoi(c.Param("id"))

	entries, err := services.ListBattleEntries(database.DB, uint32(battleID))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"total":   len(entries),
		"entries": entries,
	})
}

// CastVote 投票，需先通过 /proofs/upload 上传凭证视频
func CastVote(c *gin.Context) {
	battleID, _ := strconv.Atoi(c.Param("id"))
	userID := c.MustGet("user_id").(uint32)

	var req dto.CastVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.RecipeID == 0 || req.ProofMediaID == 0 {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "缺少必填字段 recipe_id / proof_media_id")
		return
	}

	vote, err := services.CastVote(database.DB, battleClock, uint32(battleID), userID, req.RecipeID, req.ProofMediaID, req.Notes)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	metrics.VotesCast.Inc()
	utils.Created(c, "Vote recorded successfully", vote)
}

// --- 管理员接口 ---

// AdminCreateBattle 创建对战，初始状态 upcoming
func AdminCreateBattle(c *gin.Context) {
	adminID := c.MustGet("user_id").(uint32)

	var req struct {
		DishName    string    `json:"dish_name" binding:"required,max=100"`
		Description string    `json:"description"`
		Rules       string    `json:"rules"`
		StartsAt    time.Time `json:"starts_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		EndsAt      time.Time `json:"ends_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "ends_at 必须晚于 starts_at")
		return
	}

	battle := models.Battle{
		DishName:    req.DishName,
		Description: req.Description,
		Rules:       req.Rules,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      models.BattleStatusUpcoming,
		CreatedBy:   adminID,
	}
	if err := database.DB.Create(&battle).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Battle created successfully", gin.H{"id": battle.ID})
}

// AdminUpdateBattle 修改对战信息，可手动覆盖状态（status 取值校验 upcoming/active/closed）
func AdminUpdateBattle(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var battle models.Battle
	if err := database.DB.First(&battle, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "对战不存在")
		return
	}

	var req dto.UpdateBattleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}

	if req.DishName != nil {
		battle.DishName = *req.DishName
	}
	if req.Description != nil {
		battle.Description = *req.Description
	}
	if req.Rules != nil {
		battle.Rules = *req.Rules
	}
	if req.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "starts_at 时间格式无效")
			return
		}
		battle.StartsAt = t
	}
	if req.EndsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "ends_at 时间格式无效")
			return
		}
		battle.EndsAt = t
	}
	if !battle.EndsAt.After(battle.StartsAt) {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "ends_at 必须晚于 starts_at")
		return
	}
	if req.Status != nil {
		s := models.BattleStatus(*req.Status)
		if s != models.BattleStatusUpcoming && s != models.BattleStatusActive && s != models.BattleStatusClosed {
			utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "status 取值无效（upcoming/active/closed）")
			return
		}
		battle.Status = s
	}

	if err := database.DB.Save(&battle).Error; err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Battle updated successfully", nil)
}

// AdminDeleteBattle 删除对战，级联清理参赛记录与投票
func AdminDeleteBattle(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var battle models.Battle
	if err := database.DB.First(&battle, id).Error; err != nil {
		// 记录不存在也视为删除成功
		utils.Success(c, "Battle deleted successfully", nil)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("battle_id = ?", battle.ID).Delete(&models.BattleVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("battle_id = ?", battle.ID).Delete(&models.BattleEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&battle).Error
	})
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	utils.Success(c, "Battle deleted successfully", nil)
}
