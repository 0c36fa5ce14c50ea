// file: services/leaderboard_service.go
package services

import (
	"RecipeBattle/database"
	"RecipeBattle/models"
	"context"
	"gorm.io/gorm"
	"log"
	"time"
)

// LeaderboardRefreshInterval 排行榜缓存重建周期
const LeaderboardRefreshInterval = 5 * time.Minute

// UpdateLeaderboardCache 重新计算并全量重建排行榜缓存表。
// 按各用户菜谱获得的已审核票数排名，同分按总票数。
func UpdateLeaderboardCache(db *gorm.DB, clk Clock) error {
	type cookScore struct {
		UserID        uint32
		Username      string
		Level         int
		VerifiedVotes uint
		TotalVotes    uint
	}

	var scores []cookScore
	// 一次 JOIN + GROUP BY 聚合出所有上榜用户的票数
	err := db.Table("rb_battle_vote v").
		Select("r.user_id, u.username, u.level, "+
			"COALESCE(SUM(CASE WHEN v.verified THEN 1 ELSE 0 END), 0) as verified_votes, "+
			"COUNT(v.id) as total_votes").
		Joins("JOIN rb_recipe r ON v.recipe_id = r.id").
		Joins("JOIN rb_user u ON r.user_id = u.id").
		Group("r.user_id, u.username, u.level").
		Order("verified_votes desc, total_votes desc").
		Scan(&scores).Error
	if err != nil {
		return err
	}

	now := clk.Now()
	// 在事务中重建缓存表，保证读取方不会看到半成品
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM rb_leaderboard").Error; err != nil {
			return err
		}
		for i, s := range scores {
			entry := models.LeaderboardEntry{
				UserID:        s.UserID,
				Username:      s.Username,
				Level:         s.Level,
				VerifiedVotes: s.VerifiedVotes,
				TotalVotes:    s.TotalVotes,
				Rank:          uint(i + 1),
				ComputedAt:    now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 重建后清掉 Redis 里的排行榜缓存，下次查询拿到最新数据
	if database.RDB != nil {
		keys, err := database.RDB.Keys(database.Ctx, "leaderboard:*").Result()
		if err == nil && len(keys) > 0 {
			database.RDB.Del(database.Ctx, keys...)
		}
	}
	return nil
}

// StartLeaderboardRefresher 周期性重建排行榜缓存，ctx 取消后退出
func StartLeaderboardRefresher(ctx context.Context, db *gorm.DB) {
	clk := RealClock{}

	if err := UpdateLeaderboardCache(db, clk); err != nil {
		log.Printf("leaderboard refresh failed: %v", err)
	}

	ticker := time.NewTicker(LeaderboardRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("leaderboard refresher stopped.")
			return
		case <-ticker.C:
			if err := UpdateLeaderboardCache(db, clk); err != nil {
				log.Printf("leaderboard refresh failed: %v", err)
			}
		}
	}
}
