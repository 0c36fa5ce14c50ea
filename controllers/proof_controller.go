// file: controllers/proof_controller.go
package controllers

import (
	"RecipeBattle/database"
	"RecipeBattle/dto"
	"RecipeBattle/metrics"
	"RecipeBattle/models"
	"RecipeBattle/services"
	"RecipeBattle/utils"
	"github.com/gin-gonic/gin"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// UploadProof —— 上传投票凭证视频（multipart）。
// 校验顺序：必填字段 → 对战/参赛存在性 → 格式/大小 → 内容查重 → 写盘 → 落库。
// 写盘之后任何一步失败都必须把文件删掉，不留孤儿文件。
func UploadProof(c *gin.Context) {
	userID := c.MustGet("user_id").(uint32)

	battleIDStr := c.PostForm("battle_id")
	if battleIDStr == "" {
		battleIDStr = c.PostForm("battleId")
	}
	recipeIDStr := c.PostForm("recipe_id")
	if recipeIDStr == "" {
		recipeIDStr = c.PostForm("recipeId")
	}
	battleID, _ := strconv.Atoi(battleIDStr)
	recipeID, _ := strconv.Atoi(recipeIDStr)
	if battleID == 0 || recipeID == 0 {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "缺少必填字段 battle_id / recipe_id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "获取文件失败")
		return
	}

	var battle models.Battle
	if err := database.DB.First(&battle, battleID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "对战不存在")
		return
	}
	var entry models.BattleEntry
	if err := database.DB.Where("battle_id = ? AND recipe_id = ?", battleID, recipeID).
		First(&entry).Error; err != nil {
		utils.Error(c, http.StatusNotFound, services.KindNotFound, "该菜谱未报名本场对战")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if err := services.ValidateProofUpload(fileHeader.Filename, mimeType, fileHeader.Size); err != nil {
		metrics.ProofsRejected.Inc()
		utils.ServiceError(c, err)
		return
	}

	// 读入内存计算摘要，上限 20MiB 已在校验中保证
	f, err := fileHeader.Open()
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, services.MaxProofFileSize+1))
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	if int64(len(data)) > services.MaxProofFileSize {
		metrics.ProofsRejected.Inc()
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "文件超过 20MB 上限")
		return
	}

	digest := services.ComputeDigest(data)
	dup, err := services.IsDuplicateDigest(database.DB, digest, userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}
	if dup {
		metrics.ProofsRejected.Inc()
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "重复内容：该视频已被其他用户上传过")
		return
	}

	name := utils.GenerateProofFilename(userID, strings.ToLower(filepath.Ext(fileHeader.Filename)))
	path, url, err := services.StoreProofFile(utils.UploadRoot(), name, data)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	media := models.Media{
		URL:         url,
		FilePath:    path,
		MediaType:   models.MediaTypeVideo,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
		UploadedBy:  userID,
		UploaderIP:  c.ClientIP(),
		ContentHash: &digest,
	}
	// 客户端自报时长，仅存档不做强校验
	if d, err := strconv.ParseFloat(c.PostForm("duration_seconds"), 64); err == nil && d > 0 {
		media.DurationSeconds = &d
	}

	if err := database.DB.Create(&media).Error; err != nil {
		services.RemoveProofFile(path)
		utils.ServiceError(c, err)
		return
	}

	var voter models.User
	autoApproved := false
	if err := database.DB.First(&voter, userID).Error; err == nil {
		autoApproved = services.AutoApprovalEligible(voter.Level)
	}

	metrics.ProofsUploaded.Inc()
	utils.Created(c, "success", gin.H{
		"media_id":      media.ID,
		"url":           url,
		"auto_approved": autoApproved,
	})
}

// ListPendingProofs 待审核凭证队列，最早提交的排最前
func ListPendingProofs(c *gin.Context) {
	pending, err := services.ListPendingProofs(database.DB, battleClock)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"total":   len(pending),
		"pending": pending,
	})
}

// VerifyProof 审核凭证：通过或驳回
func VerifyProof(c *gin.Context) {
	reviewerID := c.MustGet("user_id").(uint32)

	var req dto.VerifyProofReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.BattleID == 0 || req.UserID == 0 || req.Approved == nil {
		utils.Error(c, http.StatusBadRequest, services.KindInvalidArgument, "缺少必填字段 battle_id / user_id / approved")
		return
	}

	if err := services.DecideProof(database.DB, battleClock, req.BattleID, req.UserID, *req.Approved, reviewerID, req.Notes); err != nil {
		utils.ServiceError(c, err)
		return
	}

	metrics.ModerationDecisions.Inc()
	utils.Success(c, "Proof reviewed successfully", nil)
}
