// file: models/comment.go
package models

import (
	"time"
)

// Comment 菜谱评论，Rating 可选（1-5 星），平均分只统计带评分的评论
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	RecipeID  uint32    `gorm:"not null;index" json:"recipe_id"`
	UserID    uint32    `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "rb_comment"
}
