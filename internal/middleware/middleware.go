// File: internal/middleware/middleware.go
package middleware

import (
	"errors"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/logging"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey = "user"
	// TokenCookieName 存放存取令牌的 cookie 名稱
	TokenCookieName = "token"
)

var getUserByID = store.GetUserByID

// TokenExtractor 從請求取出令牌，取不到回傳空字串
type TokenExtractor func(c echo.Context) string

// FromCookie 讀取 token cookie
func FromCookie(c echo.Context) string {
	ck, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

// FromBearer 讀取 Authorization: Bearer <token>
func FromBearer(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// DefaultExtractors cookie 優先，其次 Bearer header
var DefaultExtractors = []TokenExtractor{FromCookie, FromBearer}

// ExtractToken 依序嘗試 extractors，回傳第一個非空令牌
func ExtractToken(c echo.Context, extractors ...TokenExtractor) string {
	if len(extractors) == 0 {
		extractors = DefaultExtractors
	}
	for _, ex := range extractors {
		if tok := ex(c); tok != "" {
			return tok
		}
	}
	return ""
}

// Guard 驗證令牌、載入使用者並檢查角色與啟用狀態
type Guard struct {
	db     database.DB
	tokens service.Tokens
}

func NewGuard(db database.DB, tokens service.Tokens) *Guard {
	return &Guard{db: db, tokens: tokens}
}

// RequireAuth 任何已登入且啟用中的使用者
func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return g.require(nil, next)
}

// RequireAdmin admin 或 super_admin
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.require(func(r model.Role) bool { return r.AtLeastAdmin() }, next)
}

// RequireSuperAdmin 僅限 super_admin
func (g *Guard) RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.require(func(r model.Role) bool { return r == model.RoleSuperAdmin }, next)
}

func (g *Guard) require(allowed func(model.Role) bool, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := g.authenticate(c, allowed)
		if err != nil {
			return c.JSON(err.HTTPStatus(), api.ErrorResponse{Message: err.Error(), Code: string(err.Kind)})
		}
		c.Set(ContextUserKey, identity)
		return next(c)
	}
}

func (g *Guard) authenticate(c echo.Context, allowed func(model.Role) bool) (*model.Identity, *apperr.Error) {
	tok := ExtractToken(c)
	if tok == "" {
		return nil, apperr.New(apperr.Unauthorized, "no token, authorization denied")
	}
	claims, err := g.tokens.Verify(tok)
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid or expired token")
	}
	user, err := getUserByID(c.Request().Context(), g.db, claims.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New(apperr.Unauthorized, "user not found")
	}
	if err != nil {
		logging.FromContext(c).WithError(err).Error("guard user lookup failed")
		return nil, apperr.Wrap(err)
	}
	if allowed != nil && !allowed(user.Role) {
		return nil, apperr.New(apperr.Forbidden, "insufficient permissions")
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, "account is locked")
	}
	return user.Identity(), nil
}

// IdentityFrom 取出守衛放入的身份，未經守衛時回傳 nil
func IdentityFrom(c echo.Context) *model.Identity {
	id, ok := c.Get(ContextUserKey).(*model.Identity)
	if !ok {
		return nil
	}
	return id
}

// MustIdentity 與 IdentityFrom 相同，但缺少身份時回傳 401 錯誤
func MustIdentity(c echo.Context) (*model.Identity, error) {
	if id := IdentityFrom(c); id != nil && id.ID != "" {
		return id, nil
	}
	return nil, apperr.New(apperr.Unauthorized, "invalid or missing token")
}
