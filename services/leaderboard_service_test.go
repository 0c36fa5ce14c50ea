// file: services/leaderboard_service_test.go
package services

import (
	"RecipeBattle/models"
	"testing"
	"time"

	"gorm.io/gorm"
)

// 直接写投票行构造榜单数据，绕过对战状态校验
func seedVote(t *testing.T, db *gorm.DB, battleID, recipeID uint32, verified bool) {
	t.Helper()
	voter := createUser(t, db, 1)
	media := createMedia(t, db, voter.ID, "")
	vote := models.BattleVote{
		BattleID:     battleID,
		UserID:       voter.ID,
		RecipeID:     recipeID,
		ProofMediaID: &media.ID,
		Verified:     verified,
		CreatedAt:    baseTime,
	}
	if err := db.Create(&vote).Error; err != nil {
		t.Fatalf("seed vote: %v", err)
	}
}

func TestUpdateLeaderboardCache(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	cookA := createUser(t, db, 3)
	cookB := createUser(t, db, 2)
	battle := createBattle(t, db, cookA.ID,
		baseTime.Add(-time.Hour), baseTime.Add(time.Hour), models.BattleStatusActive)
	recipeA := createRecipe(t, db, cookA.ID, "水煮鱼")
	recipeB := createRecipe(t, db, cookB.ID, "辣子鸡")

	// A：2 票已审核 + 1 票待审；B：1 票已审核 + 2 票待审
	seedVote(t, db, battle.ID, recipeA.ID, true)
	seedVote(t, db, battle.ID, recipeA.ID, true)
	seedVote(t, db, battle.ID, recipeA.ID, false)
	seedVote(t, db, battle.ID, recipeB.ID, true)
	seedVote(t, db, battle.ID, recipeB.ID, false)
	seedVote(t, db, battle.ID, recipeB.ID, false)

	if err := UpdateLeaderboardCache(db, clk); err != nil {
		t.Fatalf("update cache: %v", err)
	}

	var rows []models.LeaderboardEntry
	if err := db.Order("`rank` asc").Find(&rows).Error; err != nil {
		t.Fatalf("load leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	if rows[0].UserID != cookA.ID || rows[0].Rank != 1 {
		t.Errorf("rows[0] = (user %d, rank %d), want (user %d, rank 1)", rows[0].UserID, rows[0].Rank, cookA.ID)
	}
	if rows[0].VerifiedVotes != 2 || rows[0].TotalVotes != 3 {
		t.Errorf("rows[0] votes = (%d, %d), want (2, 3)", rows[0].VerifiedVotes, rows[0].TotalVotes)
	}
	if rows[1].UserID != cookB.ID || rows[1].Rank != 2 {
		t.Errorf("rows[1] = (user %d, rank %d), want (user %d, rank 2)", rows[1].UserID, rows[1].Rank, cookB.ID)
	}
	if rows[1].VerifiedVotes != 1 || rows[1].TotalVotes != 3 {
		t.Errorf("rows[1] votes = (%d, %d), want (1, 3)", rows[1].VerifiedVotes, rows[1].TotalVotes)
	}
	if !rows[0].ComputedAt.Equal(baseTime) {
		t.Errorf("ComputedAt = %v, want %v", rows[0].ComputedAt, baseTime)
	}
}

// 全量重建：新增票后再跑一次，旧行被替换而不是累积
func TestUpdateLeaderboardCacheRebuild(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	cookA := createUser(t, db, 3)
	cookB := createUser(t, db, 2)
	battle := createBattle(t, db, cookA.ID,
		baseTime.Add(-time.Hour), baseTime.Add(time.Hour), models.BattleStatusActive)
	recipeA := createRecipe(t, db, cookA.ID, "水煮鱼")
	recipeB := createRecipe(t, db, cookB.ID, "辣子鸡")

	seedVote(t, db, battle.ID, recipeA.ID, true)
	if err := UpdateLeaderboardCache(db, clk); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// B 后来居上
	seedVote(t, db, battle.ID, recipeB.ID, true)
	seedVote(t, db, battle.ID, recipeB.ID, true)
	clk.Advance(time.Hour)
	if err := UpdateLeaderboardCache(db, clk); err != nil {
		t.Fatalf("second update: %v", err)
	}

	var rows []models.LeaderboardEntry
	if err := db.Order("`rank` asc").Find(&rows).Error; err != nil {
		t.Fatalf("load leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (old rows replaced)", len(rows))
	}
	if rows[0].UserID != cookB.ID {
		t.Errorf("rows[0].UserID = %d, want %d", rows[0].UserID, cookB.ID)
	}
}

// 同等已审核票数时总票数多者排前
func TestUpdateLeaderboardCacheTieBreak(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	cookA := createUser(t, db, 3)
	cookB := createUser(t, db, 2)
	battle := createBattle(t, db, cookA.ID,
		baseTime.Add(-time.Hour), baseTime.Add(time.Hour), models.BattleStatusActive)
	recipeA := createRecipe(t, db, cookA.ID, "水煮鱼")
	recipeB := createRecipe(t, db, cookB.ID, "辣子鸡")

	seedVote(t, db, battle.ID, recipeA.ID, true)
	seedVote(t, db, battle.ID, recipeB.ID, true)
	seedVote(t, db, battle.ID, recipeB.ID, false)

	if err := UpdateLeaderboardCache(db, clk); err != nil {
		t.Fatalf("update cache: %v", err)
	}

	var rows []models.LeaderboardEntry
	if err := db.Order("`rank` asc").Find(&rows).Error; err != nil {
		t.Fatalf("load leaderboard: %v", err)
	}
	if len(rows) != 2 || rows[0].UserID != cookB.ID {
		t.Fatalf("rows[0].UserID = %d, want %d (more total votes wins tie)", rows[0].UserID, cookB.ID)
	}
}
