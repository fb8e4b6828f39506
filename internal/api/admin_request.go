// File: internal/api/admin_request.go
package api

// swagger:model api.CreateAdminRequest
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required" example:"root"`
	Email    string `json:"email" validate:"required,email" example:"root@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret1"`
	Role     string `json:"role" example:"admin"`
}

// swagger:model api.ToggleStatusRequest
type ToggleStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required" example:"false"`
}

// swagger:model api.ChangeRoleRequest
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required" example:"admin"`
}
