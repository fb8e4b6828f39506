package logging

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "json", nil)
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, ok := l.Formatter.(*logrus.JSONFormatter)
	require.True(t, ok)

	l, err = New("info", "", nil)
	require.NoError(t, err)
	_, ok = l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)

	_, err = New("loud", "text", nil)
	require.Error(t, err)
	_, err = New("info", "xml", nil)
	require.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", &buf)
	require.NoError(t, err)

	e := echo.New()
	e.Use(Middleware(logger))
	e.GET("/ok", func(c echo.Context) error {
		FromContext(c).Info("inside handler")
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/fail", func(c echo.Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, buf.String(), "inside handler")
	require.Contains(t, buf.String(), `"uri":"/ok"`)
	require.Contains(t, buf.String(), `"status":200`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, buf.String(), "boom")
	require.Contains(t, buf.String(), `"level":"error"`)
}

func TestFromContextFallback(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NotNil(t, FromContext(c))
}
