// file: models/battle_vote.go
package models

import (
	"time"
)

// BattleVote 对战投票，(battle_id, user_id) 唯一 —— 每人每场对战只保留一票。
// 重新提交是整行覆盖（recipe_id/proof/notes/verified 全部替换并重置 created_at），
// 不是追加历史。
type BattleVote struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	BattleID        uint32     `gorm:"not null;uniqueIndex:idx_battle_voter,priority:1" json:"battle_id"`
	UserID          uint32     `gorm:"not null;uniqueIndex:idx_battle_voter,priority:2" json:"user_id"`
	RecipeID        uint32     `gorm:"not null" json:"recipe_id"`
	ProofMediaID    *uint64    `json:"proof_media_id,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	Verified        bool       `gorm:"not null;default:false" json:"verified"`
	ProofVerifiedAt *time.Time `json:"proof_verified_at,omitempty"`
	VerifiedBy      *uint32    `json:"verified_by,omitempty"`
	ReviewNotes     string     `gorm:"type:text" json:"review_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (BattleVote) TableName() string {
	return "rb_battle_vote"
}
