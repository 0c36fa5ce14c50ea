// file: services/moderation_service_test.go
package services

import (
	"RecipeBattle/models"
	"testing"
	"time"
)

func TestListPendingProofsFIFO(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	owner := createUser(t, db, 1)
	battle := createBattle(t, db, owner.ID,
		baseTime.Add(-time.Hour), baseTime.Add(5*time.Hour), models.BattleStatusActive)
	recipe := createRecipe(t, db, owner.ID, "佛跳墙")
	mustEnter(t, db, clk, battle.ID, recipe.ID, owner.ID)

	// 低等级投票者：第一票先提交，第二票两小时后提交
	voterA := createUser(t, db, 1)
	mediaA := createMedia(t, db, voterA.ID, "")
	if _, err := CastVote(db, clk, battle.ID, voterA.ID, recipe.ID, mediaA.ID, ""); err != nil {
		t.Fatalf("vote A: %v", err)
	}

	clk.Advance(2 * time.Hour)
	voterB := createUser(t, db, 1)
	mediaB := createMedia(t, db, voterB.ID, "")
	if _, err := CastVote(db, clk, battle.ID, voterB.ID, recipe.ID, mediaB.ID, ""); err != nil {
		t.Fatalf("vote B: %v", err)
	}

	// 高等级投票者自动过审，不应出现在队列里
	voterC := createUser(t, db, 5)
	mediaC := createMedia(t, db, voterC.ID, "")
	if _, err := CastVote(db, clk, battle.ID, voterC.ID, recipe.ID, mediaC.ID, ""); err != nil {
		t.Fatalf("vote C: %v", err)
	}

	clk.Advance(time.Hour)
	pending, err := ListPendingProofs(db, clk)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}

	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
	if pending[0].UserID != voterA.ID {
		t.Errorf("pending[0].UserID = %d, want %d (oldest first)", pending[0].UserID, voterA.ID)
	}
	if pending[1].UserID != voterB.ID {
		t.Errorf("pending[1].UserID = %d, want %d", pending[1].UserID, voterB.ID)
	}

	// A 等了 3 小时，B 等了 1 小时
	if pending[0].HoursPending < 2.9 || pending[0].HoursPending > 3.1 {
		t.Errorf("pending[0].HoursPending = %f, want ~3", pending[0].HoursPending)
	}
	if pending[1].HoursPending < 0.9 || pending[1].HoursPending > 1.1 {
		t.Errorf("pending[1].HoursPending = %f, want ~1", pending[1].HoursPending)
	}
}

func TestDecideProofApprove(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	owner := createUser(t, db, 1)
	voter := createUser(t, db, 1)
	reviewer := createUser(t, db, 1)
	battle := createBattle(t, db, owner.ID,
		baseTime.Add(-time.Hour), baseTime.Add(time.Hour), models.BattleStatusActive)
	recipe := createRecipe(t, db, owner.ID, "佛跳墙")
	mustEnter(t, db, clk, battle.ID, recipe.ID, owner.ID)
	media := createMedia(t, db, voter.ID, "")
	if _, err := CastVote(db, clk, battle.ID, voter.ID, recipe.ID, media.ID, "看起来很香"); err != nil {
		t.Fatalf("cast vote: %v", err)
	}

	clk.Advance(time.Hour)
	if err := DecideProof(db, clk, battle.ID, voter.ID, true, reviewer.ID, "视频完整"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var vote models.BattleVote
	if err := db.Where("battle_id = ? AND user_id = ?", battle.ID, voter.ID).First(&vote).Error; err != nil {
		t.Fatalf("reload vote: %v", err)
	}
	if !vote.Verified {
		t.Error("Verified = false, want true")
	}
	if vote.ProofVerifiedAt == nil {
		t.Error("ProofVerifiedAt = nil, want set")
	}
	if vote.VerifiedBy == nil || *vote.VerifiedBy != reviewer.ID {
		t.Errorf("VerifiedBy = %v, want %d", vote.VerifiedBy, reviewer.ID)
	}
	if vote.ReviewNotes != "视频完整" {
		t.Errorf("ReviewNotes = %q, want 视频完整", vote.ReviewNotes)
	}

	// 幂等：相同结果再审一次不改变状态
	clk.Advance(time.Hour)
	if err := DecideProof(db, clk, battle.ID, voter.ID, true, reviewer.ID, ""); err != nil {
		t.Fatalf("approve again: %v", err)
	}
	if err := db.Where("battle_id = ? AND user_id = ?", battle.ID, voter.ID).First(&vote).Error; err != nil {
		t.Fatalf("reload vote: %v", err)
	}
	if !vote.Verified {
		t.Error("Verified flipped after repeated approve")
	}
}

// 驳回保留凭证引用和投票者备注，投票者可重新提交覆盖本行
func TestDecideProofRejectKeepsProofAndAllowsResubmit(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	owner := createUser(t, db, 1)
	voter := createUser(t, db, 1)
	reviewer := createUser(t, db, 1)
	battle := createBattle(t, db, owner.ID,
		baseTime.Add(-time.Hour), baseTime.Add(3*time.Hour), models.BattleStatusActive)
	recipe := createRecipe(t, db, owner.ID, "佛跳墙")
	mustEnter(t, db, clk, battle.ID, recipe.ID, owner.ID)
	media1 := createMedia(t, db, voter.ID, "")
	if _, err := CastVote(db, clk, battle.ID, voter.ID, recipe.ID, media1.ID, "第一次提交"); err != nil {
		t.Fatalf("cast vote: %v", err)
	}

	if err := DecideProof(db, clk, battle.ID, voter.ID, false, reviewer.ID, "视频没有拍到成品"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	var vote models.BattleVote
	if err := db.Where("battle_id = ? AND user_id = ?", battle.ID, voter.ID).First(&vote).Error; err != nil {
		t.Fatalf("reload vote: %v", err)
	}
	if vote.Verified {
		t.Error("Verified = true after reject, want false")
	}
	if vote.ProofVerifiedAt != nil {
		t.Error("ProofVerifiedAt set after reject, want nil")
	}
	if vote.VerifiedBy != nil {
		t.Error("VerifiedBy set after reject, want nil")
	}
	if vote.ProofMediaID == nil || *vote.ProofMediaID != media1.ID {
		t.Error("ProofMediaID lost after reject, want retained")
	}
	if vote.Notes != "第一次提交" {
		t.Errorf("voter notes lost after reject: %q", vote.Notes)
	}
	if vote.ReviewNotes != "视频没有拍到成品" {
		t.Errorf("ReviewNotes = %q", vote.ReviewNotes)
	}

	// 重新提交覆盖被驳回的投票，审核痕迹清空
	clk.Advance(time.Hour)
	media2 := createMedia(t, db, voter.ID, "")
	resubmitted, err := CastVote(db, clk, battle.ID, voter.ID, recipe.ID, media2.ID, "重拍了一版")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmitted.ProofMediaID == nil || *resubmitted.ProofMediaID != media2.ID {
		t.Errorf("ProofMediaID = %v, want %d", resubmitted.ProofMediaID, media2.ID)
	}
	if resubmitted.ReviewNotes != "" {
		t.Errorf("ReviewNotes = %q after resubmit, want cleared", resubmitted.ReviewNotes)
	}

	var count int64
	db.Model(&models.BattleVote{}).Where("battle_id = ? AND user_id = ?", battle.ID, voter.ID).Count(&count)
	if count != 1 {
		t.Errorf("vote rows = %d, want 1", count)
	}
}

func TestDecideProofErrors(t *testing.T) {
	db := setupTestDB(t)
	clk := newStubClock(baseTime)
	reviewer := createUser(t, db, 1)

	t.Run("投票不存在", func(t *testing.T) {
		err := DecideProof(db, clk, 9999, 9999, true, reviewer.ID, "")
		if kindOf(err) != KindNotFound {
			t.Errorf("err = %v, want not_found", err)
		}
	})

	t.Run("没有凭证的投票不可审核", func(t *testing.T) {
		owner := createUser(t, db, 1)
		voter := createUser(t, db, 1)
		battle := createBattle(t, db, owner.ID,
			baseTime.Add(-time.Hour), baseTime.Add(time.Hour), models.BattleStatusActive)
		recipe := createRecipe(t, db, owner.ID, "白灼菜心")
		mustEnter(t, db, clk, battle.ID, recipe.ID, owner.ID)
		vote := models.BattleVote{
			BattleID:  battle.ID,
			UserID:    voter.ID,
			RecipeID:  recipe.ID,
			CreatedAt: clk.Now(),
		}
		if err := db.Create(&vote).Error; err != nil {
			t.Fatalf("create vote: %v", err)
		}

		err := DecideProof(db, clk, battle.ID, voter.ID, true, reviewer.ID, "")
		if kindOf(err) != KindInvalidState {
			t.Errorf("err = %v, want invalid_state", err)
		}
	})
}
