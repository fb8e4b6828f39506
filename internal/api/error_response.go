// File: internal/api/error_response.go
package api

// ErrorResponse 所有錯誤回應的格式，Code 供前端判斷錯誤種類
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"invalid credentials"`
	Code    string `json:"code,omitempty" example:"bad_credentials"`
}

// MessageResponse 僅含訊息的成功回應
// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}
