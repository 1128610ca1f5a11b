package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopgate.backend/internal/infrastructure/models"
	"shopgate.backend/internal/infrastructure/repositories"
	"shopgate.backend/internal/interfaces/http/handlers"
	"shopgate.backend/internal/interfaces/http/middleware"
	"shopgate.backend/internal/usecases"
	"shopgate.backend/pkg/jwt"
	"shopgate.backend/pkg/logger"
	"shopgate.backend/pkg/redis"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.User{}, &models.ApiKey{}, &models.Product{}))
	require.NoError(t, repositories.SeedRoles(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	jwtService := jwt.NewService("test-secret", time.Hour, 24*time.Hour)

	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	productRepo := repositories.NewProductRepository(db)

	authUsecase := usecases.NewAuthUsecase(userRepo, roleRepo, jwtService)
	principalUsecase := usecases.NewPrincipalUsecase(userRepo, apiKeyRepo, jwtService)
	authzUsecase := usecases.NewAuthzUsecase(roleRepo)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, roleRepo)
	userUsecase := usecases.NewUserUsecase(userRepo, roleRepo)
	productUsecase := usecases.NewProductUsecase(productRepo)

	loginLimiter := redis.NewLoginLimiter(redisClient, 10, time.Minute)

	r := gin.New()
	registerAPIV1Routes(r, routeDeps{
		authHandler:    handlers.NewAuthHandler(authUsecase),
		userHandler:    handlers.NewUserHandler(userUsecase),
		apiKeyHandler:  handlers.NewApiKeyHandler(apiKeyUsecase),
		productHandler: handlers.NewProductHandler(productUsecase, authzUsecase),
		authzUsecase:   authzUsecase,
		authenticate:   middleware.Authenticate(principalUsecase),
		loginLimit:     middleware.LoginRateLimit(loginLimiter),
	})

	return &testServer{router: r, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin provisions a user in the default role and returns its
// access token.
func (s *testServer) registerAndLogin(t *testing.T, username, email, password string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, _ := decode(t, w)["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

// promoteToAdmin flips a user's role directly in storage, standing in for an
// out-of-band provisioning step.
func (s *testServer) promoteToAdmin(t *testing.T, username string) {
	t.Helper()
	var admin models.Role
	require.NoError(t, s.db.Where("name = ?", "admin").First(&admin).Error)
	require.NoError(t, s.db.Model(&models.User{}).
		Where("username = ?", username).
		Update("role_id", admin.ID).Error)
}

func TestRoutes_DefaultRoleGates(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice", "alice@example.com", "password123")

	// The default role may create products but not browse the catalog.
	w := s.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"title":      "widget",
		"priceCents": 1999,
	}, bearer(token))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/products", nil, bearer(token))
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/users", nil, bearer(token))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, bearer(token))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_MissingAndGarbageCredentials(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/products", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/products", nil, map[string]string{"X-Api-Key": "sk_shop_unknown"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_AdminIssuesScopedKey(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "root", "root@example.com", "password123")
	s.promoteToAdmin(t, "root")

	// Re-login: the role change revoked nothing here (role was changed in
	// storage directly), but a fresh token keeps the version aligned.
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "root",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminToken, _ := decode(t, w)["accessToken"].(string)

	w = s.do(t, http.MethodPost, "/api/v1/api-keys", []map[string]interface{}{
		{"name": "ci-bot", "permissions": []string{"post_products", "get_products"}},
	}, bearer(adminToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)["created"].([]interface{})
	require.Len(t, created, 1)
	rawKey := created[0].(map[string]interface{})["raw_key"].(string)
	require.NotEmpty(t, rawKey)

	keyHeader := map[string]string{"X-Api-Key": rawKey}

	// The key passes its own gates.
	w = s.do(t, http.MethodGet, "/api/v1/products", nil, keyHeader)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"title":      "widget",
		"priceCents": 500,
	}, keyHeader)
	assert.Equal(t, http.StatusCreated, w.Code)

	// But never the owner's other grants, even though the owner is admin.
	w = s.do(t, http.MethodGet, "/api/v1/users", nil, keyHeader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/api-keys", nil, keyHeader)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_EscalationDenied(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice", "alice@example.com", "password123")

	w := s.do(t, http.MethodPost, "/api/v1/api-keys", map[string]interface{}{
		"name":        "greedy",
		"permissions": []string{"get_users"},
	}, bearer(token))
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	body := decode(t, w)
	invalid, ok := body["invalid_permissions"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"get_users"}, invalid)

	// Nothing was persisted for the denied batch.
	w = s.do(t, http.MethodGet, "/api/v1/api-keys", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["keys"])
}

func TestRoutes_PasswordChangeRevokesTokens(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice", "alice@example.com", "password123")

	w := s.do(t, http.MethodPost, "/api/v1/auth/change-password", map[string]string{
		"currentPassword": "password123",
		"newPassword":     "password456",
	}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The old token's version snapshot is now stale.
	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, bearer(token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The new password logs in and the new token works.
	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "password456",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fresh, _ := decode(t, w)["accessToken"].(string)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, bearer(fresh))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_DisabledKeyStopsAuthenticating(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice", "alice@example.com", "password123")

	w := s.do(t, http.MethodPost, "/api/v1/api-keys", map[string]interface{}{
		"name":        "ci-bot",
		"permissions": []string{"post_products"},
	}, bearer(token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)["created"].([]interface{})
	entry := created[0].(map[string]interface{})
	rawKey := entry["raw_key"].(string)
	publicID := entry["public_id"].(string)

	keyHeader := map[string]string{"X-Api-Key": rawKey}
	w = s.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"title":      "widget",
		"priceCents": 100,
	}, keyHeader)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/api-keys/"+publicID+"/disable", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"title":      "widget",
		"priceCents": 100,
	}, keyHeader)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_APIKeyWinsOverBearer(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "alice", "alice@example.com", "password123")

	w := s.do(t, http.MethodPost, "/api/v1/api-keys", map[string]interface{}{
		"name":        "narrow",
		"permissions": []string{"post_products"},
	}, bearer(token))
	require.Equal(t, http.StatusCreated, w.Code)
	rawKey := decode(t, w)["created"].([]interface{})[0].(map[string]interface{})["raw_key"].(string)

	// The bearer token alone would pass get_my_user; the key does not. With
	// both headers present the key decides.
	headers := bearer(token)
	headers["X-Api-Key"] = rawKey
	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, headers)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}
