package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agentcrm/internal/database"
	"agentcrm/internal/domain"
	"agentcrm/internal/middleware"
	"agentcrm/internal/pkg/jwt"
	"agentcrm/internal/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	agentRepo := repository.NewAgentRepository(db)
	jwtSvc := jwt.New("test-secret", time.Hour)
	service := NewService(agentRepo, jwtSvc)
	handler := NewHandler(service)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtSvc))
	handler.RegisterRoutes(protected)

	return router, db
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func seedAgent(t *testing.T, db *gorm.DB, password string) *domain.Agent {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	a := &domain.Agent{
		ID:           uuid.NewString(),
		FirstName:    "Иван",
		LastName:     "Петров",
		Phone:        "+79991112233",
		Email:        "ipetrov@example.com",
		Login:        "ipetrov",
		PasswordHash: string(hash),
		City:         "Казань",
	}
	require.NoError(t, repository.NewAgentRepository(db).Create(context.Background(), a))
	return a
}

type loginResponse struct {
	Token string `json:"token"`
	Agent struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Login     string `json:"login"`
	} `json:"agent"`
}

func TestLoginAndMe(t *testing.T) {
	router, db := setupRouter(t)
	seeded := seedAgent(t, db, "secret123")

	resp := performRequest(router, http.MethodPost, "/api/auth/login",
		LoginRequest{Login: "ipetrov", Password: "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var payload loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	require.Equal(t, seeded.ID, payload.Agent.ID)
	require.Equal(t, "ipetrov", payload.Agent.Login)

	meResp := performRequest(router, http.MethodGet, "/api/auth/me", nil, payload.Token)
	require.Equal(t, http.StatusOK, meResp.Code)

	var profile domain.Agent
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&profile))
	require.Equal(t, seeded.ID, profile.ID)
	require.Equal(t, "Казань", profile.City)
}

func TestLoginByEmailAndPhone(t *testing.T) {
	router, db := setupRouter(t)
	seedAgent(t, db, "secret123")

	resp := performRequest(router, http.MethodPost, "/api/auth/login",
		LoginRequest{Login: "ipetrov@example.com", Password: "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, http.MethodPost, "/api/auth/login",
		LoginRequest{Login: "+79991112233", Password: "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	router, db := setupRouter(t)
	seedAgent(t, db, "secret123")

	wrongPassword := performRequest(router, http.MethodPost, "/api/auth/login",
		LoginRequest{Login: "ipetrov", Password: "wrong"}, "")
	missingAccount := performRequest(router, http.MethodPost, "/api/auth/login",
		LoginRequest{Login: "ghost", Password: "secret123"}, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, missingAccount.Code)
	// тела ответов совпадают байт в байт — утечки нет
	require.Equal(t, wrongPassword.Body.String(), missingAccount.Body.String())
}

func TestMeAgentVanished(t *testing.T) {
	router, db := setupRouter(t)
	seeded := seedAgent(t, db, "secret123")

	resp := performRequest(router, http.MethodPost, "/api/auth/login",
		LoginRequest{Login: "ipetrov", Password: "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var payload loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	require.NoError(t, repository.NewAgentRepository(db).Delete(context.Background(), seeded.ID))

	meResp := performRequest(router, http.MethodGet, "/api/auth/me", nil, payload.Token)
	require.Equal(t, http.StatusNotFound, meResp.Code)
}
