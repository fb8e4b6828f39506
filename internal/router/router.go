// File: internal/router/router.go
package router

import (
	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/handler/auth"
	"taskboard/internal/handler/notifications"
	"taskboard/internal/handler/tasks"
	"taskboard/internal/handler/users"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/service"
	"taskboard/internal/worker"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 路由所需的外部依賴
type Deps struct {
	DB      database.DB
	Cache   cache.Cache
	Pool    worker.Pool
	Tokens  service.Tokens
	Cookie  handler.Cookie
	Metrics *metrics.Metrics
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	guard := middleware.NewGuard(d.DB, d.Tokens)
	authed := guard.RequireAuth
	admin := guard.RequireAdmin
	super := guard.RequireSuperAdmin

	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache), authed)

	// 註冊、登入與 session
	api.POST("/register", auth.RegisterHandler(d.DB, d.Tokens, d.Cookie))
	api.POST("/login", auth.LoginHandler(d.DB, d.Tokens, d.Cookie))
	api.POST("/logout", auth.LogoutHandler(d.Cookie))
	api.GET("/verify", auth.VerifyTokenHandler(d.DB, d.Tokens))
	api.POST("/refresh-token", auth.RefreshTokenHandler(d.DB, d.Tokens, d.Cookie), authed)

	// 當前使用者
	api.GET("/profile", users.GetProfileHandler(d.DB), authed)
	api.PUT("/profile", users.UpdateProfileHandler(d.DB), authed)
	api.PUT("/change-password", users.ChangePasswordHandler(d.DB), authed)
	api.DELETE("/account", users.DeleteAccountHandler(d.DB, d.Cookie), authed)

	// 管理員
	api.GET("/users", users.ListUsersHandler(d.DB), admin)
	api.GET("/users/:id", users.GetUserHandler(d.DB), admin)
	api.PUT("/users/:id/toggle-status", users.ToggleStatusHandler(d.DB), admin)
	api.DELETE("/users/:id", users.DeleteUserHandler(d.DB), admin)
	api.POST("/create-admin", users.CreateAdminHandler(d.DB), admin)
	api.PUT("/users/:id/change-role", users.ChangeRoleHandler(d.DB), super)

	// 任務
	api.GET("/tasks", tasks.ListTasksHandler(d.DB), authed)
	api.POST("/tasks", tasks.CreateTaskHandler(d.DB), authed)
	api.GET("/tasks/:id", tasks.GetTaskHandler(d.DB), authed)
	api.PUT("/tasks/:id", tasks.UpdateTaskHandler(d.DB), authed)
	api.DELETE("/tasks/:id", tasks.DeleteTaskHandler(d.DB), authed)

	// 通知；admin 報表的角色檢查在 handler 內
	api.GET("/notifications", notifications.UserNotificationsHandler(d.DB), authed)
	api.GET("/admin/notifications", notifications.AdminNotificationsHandler(d.DB, d.Pool, d.Cache), authed)

	if d.Metrics != nil {
		e.GET(metrics.Path, d.Metrics.Handler())
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
