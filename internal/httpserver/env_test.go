package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ganeshmurthy/product-recommender-system/internal/models"
	"github.com/ganeshmurthy/product-recommender-system/internal/repo"
	"github.com/ganeshmurthy/product-recommender-system/internal/service"
	"github.com/ganeshmurthy/product-recommender-system/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

type recorderStub struct {
	calls []string
	err   error
}

func (r *recorderStub) Record(_ context.Context, userID, itemID, action string) error {
	r.calls = append(r.calls, userID+"/"+itemID+"/"+action)
	return r.err
}

type testEnv struct {
	T   *testing.T
	E   *echo.Echo
	DB  *gorm.DB
	Rec *recorderStub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.CartItem{}))

	rec := &recorderStub{}
	svc := &service.CartService{
		Store:    &repo.GormRepo{DB: db},
		Recorder: rec,
	}

	e := echo.New()
	Register(e, &Deps{
		CartHandler: &CartHTTP{Svc: svc},
		JWTSecret:   testSecret,
	})

	return &testEnv{T: t, E: e, DB: db, Rec: rec}
}

func signToken(t *testing.T, userID string) string {
	t.Helper()

	claims := &tokens.AccessClaims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

// do issues a request through the full router, including auth and
// ownership middleware. An empty asUser sends no credentials.
func (env *testEnv) do(method, path, asUser string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if asUser != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: signToken(env.T, asUser), Path: "/"})
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func bearerRequest(t *testing.T, env *testEnv, method, path, asUser string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, asUser))
	return req, httptest.NewRecorder()
}

func (env *testEnv) seed(userID, productID string, quantity int) {
	env.T.Helper()
	require.NoError(env.T, env.DB.Create(&models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}).Error)
}

func (env *testEnv) cartOf(userID string) []models.CartItem {
	env.T.Helper()
	var items []models.CartItem
	require.NoError(env.T, env.DB.Where("user_id = ?", userID).Find(&items).Error)
	return items
}
