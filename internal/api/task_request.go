// File: internal/api/task_request.go
package api

// swagger:model api.CreateTaskRequest
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required" example:"Write report"`
	Description string     `json:"description" example:"Quarterly numbers"`
	Date        *DueDate   `json:"date" swaggertype:"string" example:"2024-06-11"`
	Completed   bool       `json:"completed" example:"false"`
}

// UpdateTaskRequest 所有欄位皆為選填，未帶的欄位不更新
// swagger:model api.UpdateTaskRequest
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1" example:"Write report"`
	Description *string    `json:"description" example:"Quarterly numbers"`
	Date        *DueDate   `json:"date" swaggertype:"string" example:"2024-06-11"`
	Completed   *bool      `json:"completed" example:"true"`
}
