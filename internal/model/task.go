// File: internal/model/task.go
package model

import "time"

type Task struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Date        time.Time  `db:"date" json:"date"`
	Completed   bool       `db:"completed" json:"completed"`
	UserID      string     `db:"user_id" json:"userId"`
	Owner       *TaskOwner `json:"user,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// TaskOwner 任務擁有者的公開欄位
type TaskOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TaskPatch 部分更新，nil 欄位維持原值
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Completed   *bool
}
