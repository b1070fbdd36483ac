package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/pkg/database"
	"linguist_ai_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newLoginRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Auth: config.AuthConfig{AccessCode: "LINGUIST2025"},
		JWT:  config.JWTConfig{Secret: "unit-test-secret-0123456789abcdef", ExpireTime: time.Hour},
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})

	auth := service.NewAuthService(repository.NewUserRepository(db), rdb, cfg)
	ctrl := NewAuthController(auth)

	r := gin.New()
	r.POST("/api/login", ctrl.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	r := newLoginRouter(t)

	w := postJSON(r, "/api/login", `{"accessCode":"LINGUIST2025"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Token string     `json:"token"`
			User  model.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "Emprendedor Linguist", resp.Data.User.Name)
	assert.Equal(t, 250, resp.Data.User.XP)
}

func TestLoginEndpointRejections(t *testing.T) {
	r := newLoginRouter(t)

	w := postJSON(r, "/api/login", `{"accessCode":"WRONG"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Missing body field fails binding, not authentication.
	w = postJSON(r, "/api/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
