// file: dto/battle.go
package dto

import "strings"

// ========== 请求 DTO ==========

type EnterBattleReq struct {
	RecipeID uint32 `json:"recipe_id"`

	// 兼容旧客户端的 camelCase 别名
	RecipeIDCamel uint32 `json:"recipeId"`
}

func (r *EnterBattleReq) Normalize() {
	if r.RecipeID == 0 && r.RecipeIDCamel != 0 {
		r.RecipeID = r.RecipeIDCamel
	}
}

type CastVoteReq struct {
	RecipeID     uint32 `json:"recipe_id"`
	ProofMediaID uint64 `json:"proof_media_id"`
	Notes        string `json:"notes"`

	// 兼容旧客户端的 camelCase 别名
	RecipeIDCamel     uint32 `json:"recipeId"`
	ProofMediaIDCamel uint64 `json:"proofMediaId"`
}

func (r *CastVoteReq) Normalize() {
	if r.RecipeID == 0 && r.RecipeIDCamel != 0 {
		r.RecipeID = r.RecipeIDCamel
	}
	if r.ProofMediaID == 0 && r.ProofMediaIDCamel != 0 {
		r.ProofMediaID = r.ProofMediaIDCamel
	}
	r.Notes = strings.TrimSpace(r.Notes)
}

type VerifyProofReq struct {
	BattleID uint32 `json:"battle_id"`
	UserID   uint32 `json:"user_id"`
	Approved *bool  `json:"approved"`
	Notes    string `json:"notes"`

	// 兼容旧客户端的 camelCase 别名
	BattleIDCamel uint32 `json:"battleId"`
	UserIDCamel   uint32 `json:"userId"`
}

func (r *VerifyProofReq) Normalize() {
	if r.BattleID == 0 && r.BattleIDCamel != 0 {
		r.BattleID = r.BattleIDCamel
	}
	if r.UserID == 0 && r.UserIDCamel != 0 {
		r.UserID = r.UserIDCamel
	}
	r.Notes = strings.TrimSpace(r.Notes)
}

type UpdateBattleReq struct {
	DishName    *string `json:"dish_name"`
	Description *string `json:"description"`
	Rules       *string `json:"rules"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
	// 管理员手动覆盖状态，取值必须是 upcoming/active/closed
	Status *string `json:"status"`
}
