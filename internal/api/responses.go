// File: internal/api/responses.go
package api

import (
	"time"

	"taskboard/internal/model"
)

// UserResponse 去除密碼後的使用者資料
// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id" example:"0b6f0c1e-1c1a-4c53-9d7e-0a6c7f0e9c11"`
	Username  string    `json:"username" example:"ana"`
	Email     string    `json:"email" example:"ana@example.com"`
	Role      string    `json:"role" example:"user"`
	IsActive  bool      `json:"isActive" example:"true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Message   string    `json:"message,omitempty"`
}

// NewUserResponse 將 model.User 轉成對外格式
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses 批次轉換，nil 轉為空陣列
func NewUserResponses(users []*model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// AuthResponse 註冊、登入與刷新令牌的回應
// swagger:model api.AuthResponse
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
