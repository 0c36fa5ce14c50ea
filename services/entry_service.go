// file: services/entry_service.go
package services

import (
	"RecipeBattle/models"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

// EntryWithTally 参赛条目及票数统计
type EntryWithTally struct {
	EntryID           uint64    `json:"entry_id"`
	BattleID          uint32    `json:"battle_id"`
	RecipeID          uint32    `json:"recipe_id"`
	RecipeTitle       string    `json:"recipe_title"`
	AuthorID          uint32    `json:"author_id"`
	AuthorName        string    `json:"author_name"`
	EnteredAt         time.Time `json:"entered_at"`
	VoteCount         uint      `json:"vote_count"`
	VerifiedVoteCount uint      `json:"verified_vote_count"`
}

// EnterBattle 将菜谱报名到对战。
// 只有菜谱作者本人可以报名；对战必须尚未结束（upcoming/active）。
// 重复报名是静默幂等操作，返回已存在的记录。
func EnterBattle(db *gorm.DB, clk Clock, battleID, recipeID, actingUserID uint32) (*models.BattleEntry, error) {
	var battle models.Battle
	if err := db.First(&battle, battleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("对战不存在")
		}
		return nil, err
	}

	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("菜谱不存在")
		}
		return nil, err
	}

	status := DeriveStatus(&battle, clk.Now())
	if status != models.BattleStatusUpcoming && status != models.BattleStatusActive {
		return nil, InvalidState("对战已结束，无法报名")
	}

	if recipe.UserID != actingUserID {
		return nil, Forbidden("只能报名自己的菜谱")
	}

	// 依赖 (battle_id, recipe_id) 唯一索引而不是先查后插，避免并发下产生重复记录
	entry := models.BattleEntry{
		BattleID:  battleID,
		RecipeID:  recipeID,
		CreatedAt: clk.Now(),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "battle_id"}, {Name: "recipe_id"}},
		DoNothing: true,
	}).Create(&entry).Error; err != nil {
		return nil, err
	}

	// 冲突时 Create 不回填已有行，统一重查
	var out models.BattleEntry
	if err := db.Where("battle_id = ? AND recipe_id = ?", battleID, recipeID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBattleEntries 列出参赛条目及票数，票数降序，同票按报名时间升序（先报名者靠前）
func ListBattleEntries(db *gorm.DB, battleID uint32) ([]EntryWithTally, error) {
	entries := make([]EntryWithTally, 0)
	err := db.Table("rb_battle_entry e").
		Select("e.id as entry_id, e.battle_id, e.recipe_id, r.title as recipe_title, "+
			"r.user_id as author_id, u.username as author_name, e.created_at as entered_at, "+
			"COUNT(v.id) as vote_count, "+
			"COALESCE(SUM(CASE WHEN v.verified THEN 1 ELSE 0 END), 0) as verified_vote_count").
		Joins("JOIN rb_recipe r ON e.recipe_id = r.id").
		Joins("JOIN rb_user u ON r.user_id = u.id").
		Joins("LEFT JOIN rb_battle_vote v ON v.battle_id = e.battle_id AND v.recipe_id = e.recipe_id").
		Where("e.battle_id = ?", battleID).
		Group("e.id, e.battle_id, e.recipe_id, r.title, r.user_id, u.username, e.created_at").
		Order("vote_count desc, e.created_at asc").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
