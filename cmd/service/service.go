// File: cmd/service/service.go
// @title        Taskboard API
// @version      1.0
// @description  任務管理後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/logging"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/notify"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "taskboard/docs" // 引入 swag 產出的 docs
)

// shutdownTimeout 收到終止訊號後等待進行中請求的時間
const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	signalContext   = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	exitFunc = os.Exit
)

// newEcho 組裝 echo 實例：中介層、驗證器與路由
func newEcho(cfg config.Config, logger *logrus.Logger, deps router.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Server.Debug
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.Recover())
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}
	e.Use(logging.Middleware(logger))
	if len(cfg.CORS.Origins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, notify.HeaderAcceptLanguage},
		}))
	}

	router.Setup(e, deps)
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		return fmt.Errorf("logger 建立失敗: %w", err)
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	wp := newWorkerPool(cfg.Workers)
	defer wp.Stop()

	e := newEcho(cfg, logger, router.Deps{
		DB:      db,
		Cache:   rdb,
		Pool:    wp,
		Tokens:  service.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL),
		Cookie:  handler.Cookie{Name: middleware.TokenCookieName, Secure: cfg.Auth.CookieSecure},
		Metrics: metrics.New("taskboard"),
	})

	sigCtx, stop := signalContext()
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.Server.Addr) }()
	logger.WithField("addr", cfg.Server.Addr).Info("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-sigCtx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("service stopped")
		exitFunc(1)
	}
}
