// Package logging 建立 logrus logger 並提供 echo 請求日誌中介層
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const contextKey = "logger"

// New 依等級與格式 (text/json) 建立 logger
func New(level, format string, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return logger, nil
}

// Middleware 每個請求寫一筆日誌，並把帶欄位的 entry 放進 context 給 handler 使用
func Middleware(logger *logrus.Logger) echo.MiddlewareFunc {
	requestLogger := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			})
			switch {
			case v.Error != nil:
				entry.WithError(v.Error).Error("request failed")
			case v.Status >= 500:
				entry.Error("request")
			case v.Status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := requestLogger(next)
		return func(c echo.Context) error {
			c.Set(contextKey, logger.WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Path(),
			}))
			return h(c)
		}
	}
}

// FromContext 取出請求 entry，未經中介層時退回標準 logger
func FromContext(c echo.Context) *logrus.Entry {
	if entry, ok := c.Get(contextKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
