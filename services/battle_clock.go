// file: services/battle_clock.go
package services

import (
	"RecipeBattle/models"
	"context"
	"gorm.io/gorm"
	"log"
	"time"
)

// StatusReconcileInterval 状态回写周期
const StatusReconcileInterval = 5 * time.Minute

// DeriveStatus 根据当前时间实时计算对战状态。纯函数。
// 所有判定（报名、投票）以该结果为准，存储的 status 列只是缓存，
// 仅在时间字段异常时才回退到存储值。
func DeriveStatus(b *models.Battle, now time.Time) models.BattleStatus {
	switch {
	case !b.EndsAt.IsZero() && !now.Before(b.EndsAt):
		return models.BattleStatusClosed
	case !b.StartsAt.IsZero() && !now.Before(b.StartsAt) && now.Before(b.EndsAt):
		return models.BattleStatusActive
	case !b.StartsAt.IsZero() && now.Before(b.StartsAt):
		return models.BattleStatusUpcoming
	}
	return b.Status
}

// ReconcileBattleStatuses 将实时计算的状态回写到 status 列。
// 幂等，可与投票/报名并发执行 —— 判定路径从不信任存储值。
func ReconcileBattleStatuses(db *gorm.DB, clk Clock) error {
	var battles []models.Battle
	if err := db.Find(&battles).Error; err != nil {
		return err
	}

	now := clk.Now()
	for i := range battles {
		derived := DeriveStatus(&battles[i], now)
		if derived == battles[i].Status {
			continue
		}
		if err := db.Model(&models.Battle{}).
			Where("id = ?", battles[i].ID).
			Update("status", derived).Error; err != nil {
			return err
		}
	}
	return nil
}

// StartStatusReconciler 启动时立即回写一次，之后每 5 分钟一次。
// 失败只记日志不中断 —— 这是尽力而为的缓存刷新，不影响正确性。
// ctx 取消后退出，随进程优雅关闭。
func StartStatusReconciler(ctx context.Context, db *gorm.DB) {
	clk := RealClock{}

	if err := ReconcileBattleStatuses(db, clk); err != nil {
		log.Printf("battle status reconcile failed: %v", err)
	}

	ticker := time.NewTicker(StatusReconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("battle status reconciler stopped.")
			return
		case <-ticker.C:
			if err := ReconcileBattleStatuses(db, clk); err != nil {
				log.Printf("battle status reconcile failed: %v", err)
			}
		}
	}
}
