package loggingmw

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	mwauth "github.com/ganeshmurthy/product-recommender-system/internal/middleware/auth"
)

func TestRequestLogger_CompletionLine(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(RequestLogger(base))
	e.GET("/cart/:user_id", func(c echo.Context) error {
		c.Set(mwauth.CtxUserID, "alice")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/alice", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := buf.String()
	require.Contains(t, out, `"msg":"request completed"`)
	require.Contains(t, out, `"status":200`)
	require.Contains(t, out, `"path":"/cart/:user_id"`)
	require.Contains(t, out, `"user_id":"alice"`)
}

func TestRequestLogger_NoUserOnAnonymousRequest(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(RequestLogger(base))
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.NotContains(t, buf.String(), `"user_id"`)
}
