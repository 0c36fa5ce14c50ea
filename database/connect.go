// file: database/connect.go
package database

import (
	"RecipeBattle/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"log"
	"os"
	"time"
)

var DB *gorm.DB

func Connect() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "root:123456@tcp(localhost:3306)/recipe_battle?charset=utf8mb4&parseTime=True&loc=Local"
	}
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 这对于解决 MySQL 的 'wait_timeout' 问题至关重要。
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

// MigrateTables 按需自动迁移（生产环境建议使用外部迁移工具，设 AUTO_MIGRATE=1 开启）
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Comment{},
		&models.RecipeLike{},
		&models.Battle{},
		&models.BattleEntry{},
		&models.BattleVote{},
		&models.Media{},
		&models.LeaderboardEntry{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
