package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/openfleet/internal/common/auth"
	"github.com/openfleet/openfleet/internal/common/config"
)

func newAuthTestEngine(cfg config.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1", GinJWTAuth(cfg, nil))
	v1.GET("/vehicles", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.POST("/vehicles/:id/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.POST("/operators", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.GET("/operators", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestGinJWTAuth(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:       true,
		JWTSecret:     "test-secret",
		Issuer:        "openfleet",
		Audience:      "openfleet",
		PublicMethods: []string{"POST /v1/login", "POST /v1/operators"},
		RBAC: map[string][]string{
			"/v1/vehicles/:id/status": {"admin"},
		},
	}
	r := newAuthTestEngine(cfg)

	operatorToken, _, err := auth.GenerateAccessToken(cfg, "op-1", []string{"operator"}, time.Hour)
	require.NoError(t, err)
	adminToken, _, err := auth.GenerateAccessToken(cfg, "op-2", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	do := func(method, path, token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	// public 路由不要 token
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/v1/login", ""))

	// 方法限定的 public 条目只放行该方法：POST 注册开放，GET 列表仍要 token
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/v1/operators", ""))
	require.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/v1/operators", ""))
	require.Equal(t, http.StatusOK, do(http.MethodGet, "/v1/operators", operatorToken))

	// 受保护路由：无 token / 坏 token 拒绝，好 token 放行
	require.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/v1/vehicles", ""))
	require.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/v1/vehicles", "not-a-token"))
	require.Equal(t, http.StatusOK, do(http.MethodGet, "/v1/vehicles", operatorToken))

	// RBAC 路由：operator 拒绝，admin 放行
	require.Equal(t, http.StatusForbidden, do(http.MethodPost, "/v1/vehicles/v-1/status", operatorToken))
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/v1/vehicles/v-1/status", adminToken))
}

func TestGinJWTAuthEmptySecret(t *testing.T) {
	r := newAuthTestEngine(config.AuthConfig{Enabled: true})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGinJWTAuthDisabled(t *testing.T) {
	r := newAuthTestEngine(config.AuthConfig{Enabled: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/vehicles", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
