// File: internal/handler/cookie.go
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie 存取令牌 cookie 的設定
type Cookie struct {
	Name   string
	Secure bool
}

// Set 寫入 HttpOnly 令牌 cookie
func (ck Cookie) Set(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     ck.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear 以空值且已過期的 cookie 覆蓋
func (ck Cookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     ck.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
