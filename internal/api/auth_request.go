// File: internal/api/auth_request.go
package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"ana"`
	Email    string `json:"email" validate:"required,email" example:"ana@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret1"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ana@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret1"`
}

// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20" example:"ana"`
	Email    string `json:"email" validate:"required,email" example:"ana@example.com"`
}

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"secret1"`
	NewPassword     string `json:"newPassword" validate:"required,min=6" example:"secret2"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword" example:"secret2"`
}

// swagger:model api.DeleteAccountRequest
type DeleteAccountRequest struct {
	Password      string `json:"password" validate:"required" example:"secret1"`
	ConfirmDelete bool   `json:"confirmDelete" validate:"eq=true" example:"true"`
}
