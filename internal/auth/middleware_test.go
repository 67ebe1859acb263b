package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(secret))
	router.GET("/whoami", func(c *gin.Context) {
		requester, ok := GetRequester(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dni": requester.DNI, "role": requester.Role})
	})
	return router
}

func request(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_ValidToken(t *testing.T) {
	router := protectedRouter(testSecret)

	token, err := GenerateToken("12345678A", "Ana Garcia", "socio", testSecret)
	require.NoError(t, err)

	w := request(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "12345678A")
	assert.Contains(t, w.Body.String(), "socio")
}

func TestMiddleware_MissingHeader(t *testing.T) {
	w := request(protectedRouter(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	w := request(protectedRouter(testSecret), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_EmptyToken(t *testing.T) {
	w := request(protectedRouter(testSecret), "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	w := request(protectedRouter(testSecret), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(testSecret), RequireRole("admin"))
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	adminToken, err := GenerateToken("00000000T", "Admin", "admin", testSecret)
	require.NoError(t, err)
	memberToken, err := GenerateToken("12345678A", "Ana Garcia", "socio", testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"admin allowed", "Bearer " + adminToken, http.StatusOK},
		{"member forbidden", "Bearer " + memberToken, http.StatusForbidden},
		{"anonymous rejected", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGetRequester_NoIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetRequester(c)
	assert.False(t, ok)
}
