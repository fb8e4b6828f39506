// Package users 個人資料與管理員使用者管理 handler
package users

import (
	"taskboard/internal/service"
	"taskboard/internal/store"
)

var (
	hashPassword       = service.HashPassword
	comparePassword    = service.ComparePassword
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	listUsers          = store.ListUsers
	emailTaken         = store.EmailTaken
	usernameTaken      = store.UsernameTaken
	superAdminExists   = store.SuperAdminExists
	updateUserProfile  = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	setUserActive      = store.SetUserActive
	setUserRole        = store.SetUserRole
	deleteUser         = store.DeleteUser
)
