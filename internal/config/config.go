// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服務啟動所需設定，來源為環境變數（可由 .env 補齊）
type Config struct {
	Server struct {
		Addr  string
		Debug bool
	}
	Database struct {
		URL string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Auth struct {
		TokenSecret  string
		TokenTTL     time.Duration
		CookieSecure bool
	}
	CORS struct {
		Origins []string
	}
	Workers int
	Log     struct {
		Level  string
		Format string
	}
}

// envKeys 設定鍵對應的環境變數，依序取第一個有值者
var envKeys = map[string][]string{
	"server.addr":        {"HTTP_ADDR"},
	"server.debug":       {"DEBUG"},
	"database.url":       {"DATABASE_URL"},
	"redis.addr":         {"REDIS_ADDR"},
	"redis.password":     {"REDIS_PASSWORD"},
	"redis.db":           {"REDIS_DB"},
	"auth.token_secret":  {"TOKEN_SECRET", "JWT_SECRET"},
	"auth.token_ttl":     {"TOKEN_TTL"},
	"auth.cookie_secure": {"COOKIE_SECURE"},
	"cors.origins":       {"CORS_ORIGIN"},
	"workers":            {"WORKER_COUNT"},
	"log.level":          {"LOG_LEVEL"},
	"log.format":         {"LOG_FORMAT"},
}

// DotEnvFile 預設讀取的 .env 路徑
var DotEnvFile = ".env"

// Load 讀取 .env（若存在）後從環境變數組出 Config
func Load() (Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	v := viper.New()
	for key, envs := range envKeys {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("workers", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	var cfg Config
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Server.Debug = v.GetBool("server.debug")
	cfg.Database.URL = v.GetString("database.url")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Auth.TokenSecret = v.GetString("auth.token_secret")
	cfg.Auth.CookieSecure = v.GetBool("auth.cookie_secure")
	cfg.CORS.Origins = splitList(v.GetString("cors.origins"))
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	var err error
	if cfg.Redis.DB, err = parseInt(v, "redis.db"); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = parseInt(v, "workers"); err != nil {
		return Config{}, err
	}
	if cfg.Auth.TokenTTL, err = time.ParseDuration(v.GetString("auth.token_ttl")); err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Redis.Addr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if c.Auth.TokenSecret == "" {
		missing = append(missing, "TOKEN_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("環境變數未設定: %s", strings.Join(missing, ", "))
	}
	if c.Workers <= 0 {
		return fmt.Errorf("無效的 WORKER_COUNT: %d", c.Workers)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("無效的 TOKEN_TTL: %s", c.Auth.TokenTTL)
	}
	return nil
}

func parseInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %q", envKeys[key][0], raw)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
