package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestClassify(t *testing.T) {
	require.Equal(t, apperr.Forbidden, Classify(apperr.New(apperr.Forbidden, "no")).Kind)
	require.Equal(t, apperr.NotFound, Classify(fmt.Errorf("GetUserByID: %w", store.ErrNotFound)).Kind)
	require.Equal(t, apperr.Conflict, Classify(fmt.Errorf("CreateUser: %w", store.ErrEmailTaken)).Kind)
	require.Equal(t, apperr.Conflict, Classify(store.ErrSuperAdminExists).Kind)
	require.Equal(t, apperr.Internal, Classify(errors.New("boom")).Kind)
}

func TestError(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{apperr.New(apperr.Unauthorized, "no token"), http.StatusUnauthorized, `"code":"unauthorized"`},
		{apperr.New(apperr.BadCredentials, "invalid credentials"), http.StatusBadRequest, `"code":"bad_credentials"`},
		{store.ErrNotFound, http.StatusNotFound, `"code":"not_found"`},
		{errors.New("db down"), http.StatusInternalServerError, `"message":"db down"`},
	}
	for _, tc := range cases {
		c, rec := newCtx()
		require.NoError(t, Error(c, tc.err))
		require.Equal(t, tc.code, rec.Code)
		require.Contains(t, rec.Body.String(), tc.body)
	}

	c, rec := newCtx()
	require.NoError(t, BadRequest(c, errors.New("Key: 'x' Error")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"bad_request"`)
}

func TestCookie(t *testing.T) {
	ck := Cookie{Name: "token", Secure: true}
	exp := time.Now().Add(time.Hour)

	c, rec := newCtx()
	ck.Set(c, "abc", exp)
	set := rec.Header().Get(echo.HeaderSetCookie)
	require.True(t, strings.HasPrefix(set, "token=abc"))
	require.Contains(t, set, "HttpOnly")
	require.Contains(t, set, "Secure")
	require.Contains(t, set, "Path=/")

	c, rec = newCtx()
	ck.Clear(c)
	set = rec.Header().Get(echo.HeaderSetCookie)
	require.True(t, strings.HasPrefix(set, "token=;"))
	require.Contains(t, set, "Max-Age=0")
}
