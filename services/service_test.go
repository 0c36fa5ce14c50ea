// file: services/service_test.go
package services

import (
	"RecipeBattle/models"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubClock 固定时间的假时钟，测试中手动推进模拟对战阶段切换
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock(t time.Time) *stubClock {
	return &stubClock{now: t}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库必须限制为单连接，否则每个连接各自一个空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Comment{},
		&models.RecipeLike{},
		&models.Battle{},
		&models.BattleEntry{},
		&models.BattleVote{},
		&models.Media{},
		&models.LeaderboardEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, level int) *models.User {
	t.Helper()
	userSeq++
	u := models.User{
		Username: fmt.Sprintf("cook%d_%d", userSeq, time.Now().UnixNano()),
		Password: "password123",
		Email:    fmt.Sprintf("cook%d_%d@example.com", userSeq, time.Now().UnixNano()),
		Level:    level,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

func createBattle(t *testing.T, db *gorm.DB, creator uint32, startsAt, endsAt time.Time, status models.BattleStatus) *models.Battle {
	t.Helper()
	b := models.Battle{
		DishName:  "麻婆豆腐",
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Status:    status,
		CreatedBy: creator,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("create battle: %v", err)
	}
	return &b
}

func createRecipe(t *testing.T, db *gorm.DB, userID uint32, title string) *models.Recipe {
	t.Helper()
	r := models.Recipe{
		UserID: userID,
		Title:  title,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return &r
}

func createMedia(t *testing.T, db *gorm.DB, uploaderID uint32, digest string) *models.Media {
	t.Helper()
	m := models.Media{
		URL:        fmt.Sprintf("/uploads/proofs/proof_%d_test.mp4", uploaderID),
		MediaType:  models.MediaTypeVideo,
		FileSize:   1024,
		MimeType:   "video/mp4",
		UploadedBy: uploaderID,
	}
	if digest != "" {
		m.ContentHash = &digest
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("create media: %v", err)
	}
	return &m
}

func mustEnter(t *testing.T, db *gorm.DB, clk Clock, battleID, recipeID, userID uint32) *models.BattleEntry {
	t.Helper()
	entry, err := EnterBattle(db, clk, battleID, recipeID, userID)
	if err != nil {
		t.Fatalf("enter battle: %v", err)
	}
	return entry
}

func kindOf(err error) string {
	se, ok := err.(*Error)
	if !ok {
		return ""
	}
	return se.Kind
}
