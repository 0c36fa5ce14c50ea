// file: models/recipe_like.go
package models

import (
	"time"
)

// RecipeLike 点赞记录，(recipe_id, user_id) 唯一防止重复点赞
type RecipeLike struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	RecipeID  uint32    `gorm:"not null;uniqueIndex:idx_recipe_user,priority:1" json:"recipe_id"`
	UserID    uint32    `gorm:"not null;uniqueIndex:idx_recipe_user,priority:2" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeLike) TableName() string {
	return "rb_recipe_like"
}
