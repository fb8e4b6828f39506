// File: internal/store/errors.go
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// 業務層只依賴以下錯誤，不直接判斷 pgx 錯誤
var (
	ErrNotFound         = errors.New("record not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrUsernameTaken    = errors.New("username already in use")
	ErrSuperAdminExists = errors.New("a super_admin already exists")
	ErrDuplicate        = errors.New("duplicate record")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// 唯一約束名稱對應的錯誤，名稱需與 migrations 一致
var uniqueConstraints = map[string]error{
	"users_email_key":              ErrEmailTaken,
	"users_username_key":           ErrUsernameTaken,
	"users_single_super_admin_idx": ErrSuperAdminExists,
}

// newID 產生主鍵，測試可覆寫
var newID = uuid.NewString

// wrapError 將 pgx 錯誤轉為 store 錯誤並加上函式名稱
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if mapped, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%s: %w", op, mapped)
			}
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
