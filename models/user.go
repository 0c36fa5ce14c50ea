// file: models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"time"
)

// 自定义类型 UserRole, UserStatus
type UserRole string
type UserStatus string

const (
	RoleUser      UserRole   = "user"
	RoleModerator UserRole   = "moderator"
	RoleAdmin     UserRole   = "admin"
	StatusActive  UserStatus = "active"
	StatusBanned  UserStatus = "banned"
)

// AutoApproveLevel 等级达到该值的用户，投票凭证视频免人工审核
const AutoApproveLevel = 4

type User struct {
	ID        uint32     `gorm:"primarykey" json:"id"`
	Username  string     `gorm:"size:50;unique;not null" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Bio       string     `gorm:"size:500" json:"bio,omitempty"`
	AvatarURL string     `gorm:"size:512" json:"avatar_url,omitempty"`
	Level     int        `gorm:"not null;default:1" json:"level"`
	XP        int        `gorm:"not null;default:0" json:"xp"`
	Role      UserRole   `gorm:"size:20;not null;default:'user'" json:"role"`
	Status    UserStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "rb_user"
}

// BeforeSave GORM Hook，在保存用户前自动哈希密码
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.ID == 0 || tx.Statement.Changed("Password") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashedPassword)
	}
	return
}

// CheckPassword 校验密码是否正确
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
