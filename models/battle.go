// file: models/battle.go
package models

import (
	"time"
)

// BattleStatus 定义对战状态
type BattleStatus string

const (
	BattleStatusUpcoming BattleStatus = "upcoming"
	BattleStatusActive   BattleStatus = "active"
	BattleStatusClosed   BattleStatus = "closed"
)

// Battle 主题对战。Status 列是缓存值，可能过期；
// 所有判定逻辑必须使用 services.DeriveStatus 实时计算的状态。
type Battle struct {
	ID          uint32       `gorm:"primarykey" json:"id,omitempty"`
	DishName    string       `gorm:"size:100;not null" json:"dish_name"`
	Description string       `gorm:"type:text" json:"description"`
	Rules       string       `gorm:"type:text" json:"rules"`
	StartsAt    time.Time    `gorm:"not null" json:"starts_at" time_format:"2006-01-02T15:04:05Z07:00"`
	EndsAt      time.Time    `gorm:"not null" json:"ends_at" time_format:"2006-01-02T15:04:05Z07:00"`
	Status      BattleStatus `gorm:"size:20;not null;default:'upcoming'" json:"status,omitempty"`
	CreatedBy   uint32       `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty"`
}

func (Battle) TableName() string {
	return "rb_battle"
}
