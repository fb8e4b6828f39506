// Package auth 註冊、登入、登出與令牌相關 handler
package auth

import (
	"taskboard/internal/service"
	"taskboard/internal/store"
)

// 以下變數供測試覆寫
var (
	hashPassword    = service.HashPassword
	comparePassword = service.ComparePassword
	createUser      = store.CreateUser
	getUserByID     = store.GetUserByID
	getUserByEmail  = store.GetUserByEmail
	emailTaken      = store.EmailTaken
)
