// file: services/vote_service.go
package services

import (
	"RecipeBattle/models"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CastVote 投票（或改票）。整个流程在一个事务内：
//  1. 对战必须存在且实时状态为 active、ends_at 在未来
//  2. 被投菜谱必须已报名本场对战
//  3. 凭证媒体必须存在且由投票者本人上传
//  4. 不能给自己的菜谱投票
//  5. 按投票者等级决定是否自动过审
//  6. 对 (battle_id, user_id) 唯一索引做 upsert —— 改票是整行覆盖，
//     并发提交由数据库约束裁决（后提交者胜出），不会产生重复行
func CastVote(db *gorm.DB, clk Clock, battleID, voterID, recipeID uint32, proofMediaID uint64, notes string) (*models.BattleVote, error) {
	var vote models.BattleVote

	err := db.Transaction(func(tx *gorm.DB) error {
		var battle models.Battle
		if err := tx.First(&battle, battleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("对战不存在")
			}
			return err
		}

		now := clk.Now()
		if DeriveStatus(&battle, now) != models.BattleStatusActive || !battle.EndsAt.After(now) {
			return InvalidState("对战未在进行中，无法投票")
		}

		var entry models.BattleEntry
		if err := tx.Where("battle_id = ? AND recipe_id = ?", battleID, recipeID).
			First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return InvalidState("该菜谱未报名本场对战")
			}
			return err
		}

		var proof models.Media
		if err := tx.First(&proof, proofMediaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return InvalidArgument("凭证媒体不存在")
			}
			return err
		}
		if proof.UploadedBy != voterID {
			return InvalidArgument("凭证必须由投票者本人上传")
		}

		var recipe models.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("菜谱不存在")
			}
			return err
		}
		if recipe.UserID == voterID {
			return Forbidden("不能给自己的菜谱投票")
		}

		var voter models.User
		if err := tx.First(&voter, voterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("用户不存在")
			}
			return err
		}
		autoApproved := AutoApprovalEligible(voter.Level)

		pmID := proofMediaID
		vote = models.BattleVote{
			BattleID:     battleID,
			UserID:       voterID,
			RecipeID:     recipeID,
			ProofMediaID: &pmID,
			Notes:        notes,
			Verified:     autoApproved,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if autoApproved {
			t := now
			vote.ProofVerifiedAt = &t
		}

		// 改票整行覆盖：verified_by/review_notes 一并清空，created_at 重置
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "battle_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"recipe_id", "proof_media_id", "notes", "verified",
				"proof_verified_at", "verified_by", "review_notes",
				"created_at", "updated_at",
			}),
		}).Create(&vote).Error; err != nil {
			return err
		}

		// 覆盖已有行时 Create 不回填原主键，用干净变量重查一次
		var saved models.BattleVote
		if err := tx.Where("battle_id = ? AND user_id = ?", battleID, voterID).
			First(&saved).Error; err != nil {
			return err
		}
		vote = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
