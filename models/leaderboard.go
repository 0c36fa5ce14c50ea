// file: models/leaderboard.go
package models

import (
	"time"
)

// LeaderboardEntry 排行榜缓存表，由 services.UpdateLeaderboardCache 全量重建。
// 按各用户菜谱在对战中获得的已审核票数排名。
type LeaderboardEntry struct {
	ID            uint64    `gorm:"primarykey" json:"-"`
	UserID        uint32    `gorm:"not null" json:"user_id"`
	Username      string    `gorm:"size:50;not null" json:"username"`
	Level         int       `gorm:"not null;default:1" json:"level"`
	VerifiedVotes uint      `gorm:"not null;default:0" json:"verified_votes"`
	TotalVotes    uint      `gorm:"not null;default:0" json:"total_votes"`
	Rank          uint      `gorm:"not null" json:"rank"`
	ComputedAt    time.Time `json:"computed_at"`
}

func (LeaderboardEntry) TableName() string {
	return "rb_leaderboard"
}
