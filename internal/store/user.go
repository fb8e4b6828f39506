// File: internal/store/user.go
package store

import (
	"context"
	"strings"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrapError("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(email),
	))
	if err != nil {
		return nil, wrapError("GetUserByEmail", err)
	}
	return u, nil
}

// ListUsers 依建立時間新到舊列出所有使用者
func ListUsers(ctx context.Context, db database.DB) ([]*model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, wrapError("ListUsers", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapError("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("ListUsers", err)
	}
	return users, nil
}

// CreateUser 寫入新使用者，ID 與時間戳由此產生
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.ID == "" {
		u.ID = newID()
	}
	u.Email = strings.ToLower(u.Email)
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.IsActive,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrapError("CreateUser", err)
	}
	return u, nil
}

// EmailTaken 判斷 email 是否已被 exceptID 以外的使用者使用，exceptID 可為空
func EmailTaken(ctx context.Context, db database.DB, email, exceptID string) (bool, error) {
	var taken bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		strings.ToLower(email),
		exceptID,
	).Scan(&taken); err != nil {
		return false, wrapError("EmailTaken", err)
	}
	return taken, nil
}

// UsernameTaken 判斷 username 是否已被 exceptID 以外的使用者使用
func UsernameTaken(ctx context.Context, db database.DB, username, exceptID string) (bool, error) {
	var taken bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`,
		username,
		exceptID,
	).Scan(&taken); err != nil {
		return false, wrapError("UsernameTaken", err)
	}
	return taken, nil
}

// SuperAdminExists 判斷 exceptID 以外是否已有 super_admin
func SuperAdminExists(ctx context.Context, db database.DB, exceptID string) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = $1 AND id <> $2)`,
		string(model.RoleSuperAdmin),
		exceptID,
	).Scan(&exists); err != nil {
		return false, wrapError("SuperAdminExists", err)
	}
	return exists, nil
}

// UpdateUserProfile 同時更新 username 與 email 並回傳最新資料
func UpdateUserProfile(ctx context.Context, db database.DB, userID, username, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET username = $1, email = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+userColumns,
		username,
		strings.ToLower(email),
		userID,
	))
	if err != nil {
		return nil, wrapError("UpdateUserProfile", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID string, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = NOW()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return wrapError("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapError("UpdateUserPassword", pgx.ErrNoRows)
	}
	return nil
}

func SetUserActive(ctx context.Context, db database.DB, userID string, active bool) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+userColumns,
		active,
		userID,
	))
	if err != nil {
		return nil, wrapError("SetUserActive", err)
	}
	return u, nil
}

// SetUserRole 變更角色；第二位 super_admin 會被唯一索引擋下並回傳 ErrSuperAdminExists
func SetUserRole(ctx context.Context, db database.DB, userID string, role model.Role) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET role = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+userColumns,
		string(role),
		userID,
	))
	if err != nil {
		return nil, wrapError("SetUserRole", err)
	}
	return u, nil
}

// DeleteUser 刪除使用者，其任務由外鍵 ON DELETE CASCADE 一併刪除
func DeleteUser(ctx context.Context, db database.DB, userID string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return wrapError("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapError("DeleteUser", pgx.ErrNoRows)
	}
	return nil
}
