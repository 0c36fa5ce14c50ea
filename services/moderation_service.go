// file: services/moderation_service.go
package services

import (
	"RecipeBattle/models"
	"errors"
	"gorm.io/gorm"
	"time"
)

// PendingProof 待审核凭证，按提交时间先到先审
type PendingProof struct {
	BattleID     uint32    `json:"battle_id"`
	BattleDish   string    `json:"battle_dish"`
	UserID       uint32    `json:"user_id"`
	Username     string    `json:"username"`
	RecipeID     uint32    `json:"recipe_id"`
	RecipeTitle  string    `json:"recipe_title"`
	ProofMediaID uint64    `json:"proof_media_id"`
	ProofURL     string    `json:"proof_url"`
	Notes        string    `json:"notes,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	HoursPending float64   `json:"hours_pending"`
}

// ListPendingProofs 列出所有未过审且带凭证的投票，最早提交的排最前
func ListPendingProofs(db *gorm.DB, clk Clock) ([]PendingProof, error) {
	rows := make([]PendingProof, 0)
	err := db.Table("rb_battle_vote v").
		Select("v.battle_id, b.dish_name as battle_dish, v.user_id, u.username, "+
			"v.recipe_id, r.title as recipe_title, v.proof_media_id, m.url as proof_url, "+
			"v.notes, v.created_at as submitted_at").
		Joins("JOIN rb_battle b ON v.battle_id = b.id").
		Joins("JOIN rb_user u ON v.user_id = u.id").
		Joins("JOIN rb_recipe r ON v.recipe_id = r.id").
		Joins("JOIN rb_media m ON v.proof_media_id = m.id").
		Where("v.verified = ? AND v.proof_media_id IS NOT NULL", false).
		Order("v.created_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	now := clk.Now()
	for i := range rows {
		rows[i].HoursPending = now.Sub(rows[i].SubmittedAt).Hours()
	}
	return rows, nil
}

// DecideProof 审核凭证。
// 通过：verified=true，记录审核时间和审核人；
// 驳回：verified=false，审核时间和审核人清空 —— 凭证引用和投票者备注保留，
// 投票者重新提交时覆盖本行而不是新建。
// 同一结果重复提交不会产生进一步变化。
func DecideProof(db *gorm.DB, clk Clock, battleID, userID uint32, approved bool, reviewerID uint32, reviewNotes string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var vote models.BattleVote
		if err := tx.Where("battle_id = ? AND user_id = ?", battleID, userID).
			First(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("投票记录不存在")
			}
			return err
		}
		if vote.ProofMediaID == nil {
			return InvalidState("该投票没有待审核的凭证")
		}

		updates := map[string]interface{}{}
		if approved {
			updates["verified"] = true
			updates["proof_verified_at"] = clk.Now()
			updates["verified_by"] = reviewerID
		} else {
			updates["verified"] = false
			updates["proof_verified_at"] = nil
			updates["verified_by"] = nil
		}
		if reviewNotes != "" {
			updates["review_notes"] = reviewNotes
		}

		return tx.Model(&models.BattleVote{}).
			Where("battle_id = ? AND user_id = ?", battleID, userID).
			Updates(updates).Error
	})
}
