// File: internal/store/task.go
package store

import (
	"context"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

// 任務查詢一律帶出擁有者公開欄位
const taskSelect = `SELECT t.id, t.title, t.description, t.date, t.completed, t.user_id,
       t.created_at, t.updated_at, u.id, u.username, u.email`

func scanTask(row pgx.Row) (*model.Task, error) {
	t := &model.Task{Owner: &model.TaskOwner{}}
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Date,
		&t.Completed,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Owner.ID,
		&t.Owner.Username,
		&t.Owner.Email,
	); err != nil {
		return nil, err
	}
	return t, nil
}

func collectTasks(op string, rows pgx.Rows) ([]*model.Task, error) {
	defer rows.Close()
	tasks := []*model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrapError(op, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(op, err)
	}
	return tasks, nil
}

// ListTasksByUser 列出使用者的任務，依到期日排序
func ListTasksByUser(ctx context.Context, db database.DB, userID string) ([]*model.Task, error) {
	rows, err := db.Query(ctx,
		taskSelect+`
		 FROM tasks t JOIN users u ON u.id = t.user_id
		 WHERE t.user_id = $1
		 ORDER BY t.date ASC, t.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, wrapError("ListTasksByUser", err)
	}
	return collectTasks("ListTasksByUser", rows)
}

// ListAllTasks 列出所有任務，供管理員統計使用
func ListAllTasks(ctx context.Context, db database.DB) ([]*model.Task, error) {
	rows, err := db.Query(ctx,
		taskSelect+`
		 FROM tasks t JOIN users u ON u.id = t.user_id
		 ORDER BY t.date ASC`,
	)
	if err != nil {
		return nil, wrapError("ListAllTasks", err)
	}
	return collectTasks("ListAllTasks", rows)
}

func GetTaskByID(ctx context.Context, db database.DB, taskID, ownerID string) (*model.Task, error) {
	t, err := scanTask(db.QueryRow(ctx,
		taskSelect+`
		 FROM tasks t JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1 AND t.user_id = $2`,
		taskID,
		ownerID,
	))
	if err != nil {
		return nil, wrapError("GetTaskByID", err)
	}
	return t, nil
}

// CreateTask 新增任務，Date 為零值時以目前時間代替
func CreateTask(ctx context.Context, db database.DB, t *model.Task) (*model.Task, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Date.IsZero() {
		t.Date = timeNow()
	}
	created, err := scanTask(db.QueryRow(ctx,
		`WITH t AS (
		   INSERT INTO tasks (id, title, description, date, completed, user_id)
		   VALUES ($1, $2, $3, $4, $5, $6)
		   RETURNING *
		 )
		 `+taskSelect+`
		 FROM t JOIN users u ON u.id = t.user_id`,
		t.ID,
		t.Title,
		t.Description,
		t.Date,
		t.Completed,
		t.UserID,
	))
	if err != nil {
		return nil, wrapError("CreateTask", err)
	}
	return created, nil
}

// UpdateTask 僅更新 patch 中非 nil 的欄位
func UpdateTask(ctx context.Context, db database.DB, taskID, ownerID string, patch model.TaskPatch) (*model.Task, error) {
	updated, err := scanTask(db.QueryRow(ctx,
		`WITH t AS (
		   UPDATE tasks SET
		     title       = COALESCE($3, title),
		     description = COALESCE($4, description),
		     date        = COALESCE($5, date),
		     completed   = COALESCE($6, completed),
		     updated_at  = NOW()
		   WHERE id = $1 AND user_id = $2
		   RETURNING *
		 )
		 `+taskSelect+`
		 FROM t JOIN users u ON u.id = t.user_id`,
		taskID,
		ownerID,
		patch.Title,
		patch.Description,
		patch.Date,
		patch.Completed,
	))
	if err != nil {
		return nil, wrapError("UpdateTask", err)
	}
	return updated, nil
}

func DeleteTask(ctx context.Context, db database.DB, taskID, ownerID string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID,
		ownerID,
	)
	if err != nil {
		return wrapError("DeleteTask", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapError("DeleteTask", pgx.ErrNoRows)
	}
	return nil
}

var timeNow = time.Now
