package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-task-manager/internal/config"
	"go-task-manager/internal/database"
	"go-task-manager/internal/logger"
	"go-task-manager/internal/models"
	"go-task-manager/internal/repositories"
	"go-task-manager/internal/routes"
)

// テストで事前に作成されるユーザー
const (
	NormalUsername = "normal_user"
	NormalPassword = "password123"
	OtherUsername  = "other_user"
	OtherPassword  = "password456"
)

// TestConfig はテスト用の設定を返します。
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		DBDriver:           config.DriverSQLite,
		JWTSecretKey:       "test-jwt-secret-key-0123456789",
		JWTAccessTokenTTL:  15 * time.Minute,
		BcryptCost:         bcrypt.MinCost,
		LogLevel:           "error",
		CORSAllowedOrigins: "http://localhost:3000",
	}
}

// NewTestDB はテストごとに独立したインメモリSQLiteデータベースを作成し、マイグレーションします。
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.Options{
		Driver: config.DriverSQLite,
		DSN:    ":memory:?_pragma=foreign_keys(1)",
	}, logger.Discard())
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { database.Close(db) })

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")
	return db
}

// SetupTestDB はテスト用のデータベースとルーターを作成し、テストユーザーを投入します。
func SetupTestDB(t *testing.T) (*gorm.DB, *gin.Engine, *repositories.TaskRepository, *repositories.UserRepository) {
	t.Helper()

	db := NewTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	CreateTestUser(t, userRepo, NormalUsername, NormalPassword)
	CreateTestUser(t, userRepo, OtherUsername, OtherPassword)

	router := SetupTestRouter(t, db)
	return db, router, taskRepo, userRepo
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return routes.SetupRouter(db, TestConfig(), logger.Discard())
}

// CreateTestUser はリポジトリ経由でユーザーを直接作成します。
func CreateTestUser(t *testing.T, userRepo *repositories.UserRepository, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, userRepo.Create(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

// UniqueUsername は衝突しないユーザー名を生成します。
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}

// CreateTestTask はAPI経由でタスクを作成します。
func CreateTestTask(t *testing.T, router *gin.Engine, token, title string) models.Task {
	t.Helper()

	body, _ := json.Marshal(map[string]any{"title": title})
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "タスク作成に失敗しました: %s", resp.Body.String())

	var created struct {
		Task models.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return created.Task
}

// LoginAndGetToken はログインしてアクセストークンを取得します。
func LoginAndGetToken(t *testing.T, router *gin.Engine, username, password string) (string, error) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var loginRes map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &loginRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}
	token, ok := loginRes["access_token"].(string)
	if !ok {
		return "", errors.New("access_token not found or not a string in login response")
	}
	return token, nil
}

// DoJSON はJSONリクエストをルーターに送り、レスポンスを返します。token が空の場合は認証ヘッダーを付けません。
func DoJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
