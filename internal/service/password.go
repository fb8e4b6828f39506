// File: internal/service/password.go
package service

import (
	"errors"

	"taskboard/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bcrypt 只取前 72 bytes，超過的密碼直接拒絕
const MaxPasswordBytes = 72

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	passwordCost                 = bcrypt.DefaultCost
)

// HashPassword 產生 bcrypt 雜湊；過長的密碼回傳 bad_request
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", apperr.New(apperr.BadRequest, "password must be at most 72 bytes")
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", apperr.Wrap(err)
	}
	return string(hashBytes), nil
}

// ComparePassword 密碼不符回傳 bad_credentials，雜湊毀損等其他錯誤視為 internal
func ComparePassword(hash, password string) error {
	err := bcryptCompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperr.New(apperr.BadCredentials, "invalid credentials")
	default:
		return apperr.Wrap(err)
	}
}
