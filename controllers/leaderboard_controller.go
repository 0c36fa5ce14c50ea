// file: controllers/leaderboard_controller.go
package controllers

import (
	"RecipeBattle/database"
	"RecipeBattle/models"
	"RecipeBattle/utils"
	"encoding/json"
	"fmt"
	"github.com/gin-gonic/gin"
	"strconv"
	"time"
)

// GetLeaderboard 查询排行榜，优先读 Redis 缓存
func GetLeaderboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if database.RDB != nil {
		val, err := database.RDB.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var results []models.LeaderboardEntry
			if json.Unmarshal([]byte(val), &results) == nil {
				utils.Success(c, "success (from cache)", results)
				return
			}
		}
	}

	var results []models.LeaderboardEntry
	// 修正：为保留字 rank 加上反引号
	database.DB.Order("`rank` asc").Limit(limit).Find(&results)

	if database.RDB != nil {
		jsonData, err := json.Marshal(results)
		if err == nil {
			// 缓存有效期设置为较短的15秒，保证排行榜的准实时性
			database.RDB.Set(database.Ctx, cacheKey, jsonData, 15*time.Second)
		}
	}

	utils.Success(c, "success", results)
}
