// file: models/recipe.go
package models

import (
	"time"
)

// Recipe 用户发布的菜谱，可报名参加主题对战
type Recipe struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	UserID      uint32    `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Steps       string    `gorm:"type:text" json:"steps"`
	ImageURL    string    `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Recipe) TableName() string {
	return "rb_recipe"
}
