package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/logging"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	claims *service.Claims
	err    error
}

func (f fakeTokens) Issue(string) (string, time.Time, error) { return "tok", time.Time{}, nil }
func (f fakeTokens) Verify(tok string) (*service.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func restore() {
	getUserByID = store.GetUserByID
}

func newContext(auth string, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func userWith(role model.Role, active bool) func(context.Context, database.DB, string) (*model.User, error) {
	return func(_ context.Context, _ database.DB, id string) (*model.User, error) {
		return &model.User{ID: id, Username: "ana", Role: role, IsActive: active}, nil
	}
}

func TestExtractToken(t *testing.T) {
	ctx, _ := newContext("", "")
	require.Equal(t, "", ExtractToken(ctx))

	ctx, _ = newContext("BadHeader", "")
	require.Equal(t, "", ExtractToken(ctx))

	ctx, _ = newContext("Bearer abc", "")
	require.Equal(t, "abc", ExtractToken(ctx))

	ctx, _ = newContext("bearer abc", "")
	require.Equal(t, "abc", ExtractToken(ctx))

	// cookie 優先於 header
	ctx, _ = newContext("Bearer header-tok", "cookie-tok")
	require.Equal(t, "cookie-tok", ExtractToken(ctx))

	// 自訂順序
	require.Equal(t, "header-tok", ExtractToken(ctx, FromBearer, FromCookie))
}

func TestRequireAuth(t *testing.T) {
	ok := fakeTokens{claims: &service.Claims{ID: "u1"}}

	t.Run("missing token", func(t *testing.T) {
		t.Cleanup(restore)
		called := false
		ctx, rec := newContext("", "")
		err := NewGuard(nil, ok).RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
		require.NoError(t, err)
		require.False(t, called)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newContext("Bearer x", "")
		err := NewGuard(nil, fakeTokens{err: service.ErrInvalidToken}).RequireAuth(func(echo.Context) error { return nil })(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user gone", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newContext("Bearer x", "")
		err := NewGuard(nil, ok).RequireAuth(func(echo.Context) error { return nil })(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		var buf bytes.Buffer
		logger, err := logging.New("info", "json", &buf)
		require.NoError(t, err)
		ctx, rec := newContext("Bearer x", "")
		h := logging.Middleware(logger)(NewGuard(nil, ok).RequireAuth(func(echo.Context) error { return nil }))
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, buf.String(), "guard user lookup failed")
		require.Contains(t, buf.String(), "db down")
	})

	t.Run("inactive", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = userWith(model.RoleUser, false)
		ctx, rec := newContext("", "cookie")
		err := NewGuard(nil, ok).RequireAuth(func(echo.Context) error { return nil })(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "locked")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = userWith(model.RoleUser, true)
		ctx, rec := newContext("", "cookie")
		called := false
		err := NewGuard(nil, ok).RequireAuth(func(c echo.Context) error {
			called = true
			id := IdentityFrom(c)
			require.Equal(t, &model.Identity{ID: "u1", Role: model.RoleUser, Username: "ana"}, id)
			return c.String(http.StatusOK, "ok")
		})(ctx)
		require.NoError(t, err)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	ok := fakeTokens{claims: &service.Claims{ID: "u1"}}
	cases := []struct {
		role   model.Role
		active bool
		want   int
	}{
		{model.RoleUser, true, http.StatusForbidden},
		{model.RoleAdmin, true, http.StatusOK},
		{model.RoleSuperAdmin, true, http.StatusOK},
		{model.RoleAdmin, false, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			t.Cleanup(restore)
			getUserByID = userWith(tc.role, tc.active)
			ctx, rec := newContext("Bearer x", "")
			err := NewGuard(nil, ok).RequireAdmin(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(ctx)
			require.NoError(t, err)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	ok := fakeTokens{claims: &service.Claims{ID: "u1"}}
	cases := map[model.Role]int{
		model.RoleUser:       http.StatusForbidden,
		model.RoleAdmin:      http.StatusForbidden,
		model.RoleSuperAdmin: http.StatusOK,
	}
	for role, want := range cases {
		t.Run(string(role), func(t *testing.T) {
			t.Cleanup(restore)
			getUserByID = userWith(role, true)
			ctx, rec := newContext("Bearer x", "")
			err := NewGuard(nil, ok).RequireSuperAdmin(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(ctx)
			require.NoError(t, err)
			require.Equal(t, want, rec.Code)
		})
	}
}

func TestMustIdentity(t *testing.T) {
	ctx, _ := newContext("", "")
	require.Nil(t, IdentityFrom(ctx))
	_, err := MustIdentity(ctx)
	require.Error(t, err)

	ctx.Set(ContextUserKey, &model.Identity{ID: "u1"})
	id, err := MustIdentity(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", id.ID)
}
