package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminRouter(token string) *gin.Engine {
	router := gin.New()
	router.Use(AdminTokenAuth(token))
	router.POST("/admin-op", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAdminTokenAuth_OpenWhenUnset(t *testing.T) {
	// пустой секрет — шлюз открыт, так живёт локальная разработка
	router := adminRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin-op", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminTokenAuth_XAdminTokenHeader(t *testing.T) {
	router := adminRouter("sekret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin-op", nil)
	req.Header.Set("X-Admin-Token", "sekret")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminTokenAuth_BearerFallback(t *testing.T) {
	router := adminRouter("sekret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin-op", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminTokenAuth_MissingToken(t *testing.T) {
	router := adminRouter("sekret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin-op", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid admin token")
}

func TestAdminTokenAuth_WrongToken(t *testing.T) {
	router := adminRouter("sekret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin-op", nil)
	req.Header.Set("X-Admin-Token", "not-the-secret")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid admin token")
}
