// file: models/battle_entry.go
package models

import (
	"time"
)

// BattleEntry 参赛记录，(battle_id, recipe_id) 唯一，重复报名静默幂等
type BattleEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	BattleID  uint32    `gorm:"not null;uniqueIndex:idx_battle_recipe,priority:1" json:"battle_id"`
	RecipeID  uint32    `gorm:"not null;uniqueIndex:idx_battle_recipe,priority:2" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (BattleEntry) TableName() string {
	return "rb_battle_entry"
}
