package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openfleet/openfleet/internal/common/auth"
	"github.com/openfleet/openfleet/internal/common/config"
	"github.com/openfleet/openfleet/internal/common/logger"
	"github.com/openfleet/openfleet/internal/common/metrics"
	"github.com/openfleet/openfleet/internal/common/middleware"
)

// GinAccessLog 访问日志 + 请求计数（与 gRPC 的 UnaryAccessLogInterceptor 对应）。
func GinAccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		cost := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()

		if log == nil {
			return
		}
		fields := map[string]interface{}{
			"route":  route,
			"method": c.Request.Method,
			"status": status,
			"cost":   cost.String(),
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
			log.WithFields(fields).Warn("http request failed")
		} else if status >= http.StatusInternalServerError {
			log.WithFields(fields).Warn("http request failed")
		} else {
			log.WithFields(fields).Info("http request ok")
		}
	}
}

// GinJWTAuth JWT 鉴权中间件（与 UnaryJWTAuthInterceptor 同一套 token/claims）：
// - 路由在 cfg.PublicMethods 中时放行（支持 "POST /v1/operators" 形式限定 HTTP 方法）
// - 校验通过后把 AuthInfo 写进 request ctx，业务侧用 AuthFromContext 读取
// - cfg.RBAC[route] 非空时要求角色交集
func GinJWTAuth(cfg config.AuthConfig, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}
		route := c.FullPath()
		if isPublicRoute(cfg.PublicMethods, c.Request.Method, route) {
			c.Next()
			return
		}
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			if log != nil {
				log.Warn("auth enabled but jwt_secret is empty")
			}
			abortUnauthorized(c, "auth not configured")
			return
		}

		tokenStr := BearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			abortUnauthorized(c, "missing authorization")
			return
		}
		claims, err := auth.ParseAccessToken(cfg, tokenStr)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ai := AuthInfo{Subject: claims.Subject, Roles: claims.Roles}

		if required := cfg.RBAC[route]; len(required) > 0 && !HasAnyRole(ai.Roles, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  gin.H{"code": http.StatusForbidden, "message": "permission denied"},
			})
			return
		}

		c.Request = c.Request.WithContext(ContextWithAuth(c.Request.Context(), ai))
		c.Next()
	}
}

// GinRateLimit 限流中间件：超限返回 429。
func GinRateLimit(limiter middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status": "error",
				"error":  gin.H{"code": http.StatusTooManyRequests, "message": "too many requests"},
			})
			return
		}
		c.Next()
	}
}

// isPublicRoute 判断 HTTP 路由是否免鉴权：
// - "POST /v1/operators" 形式：HTTP 方法与路由模板都要匹配
// - 裸路径形式（如 "/healthz"）：任意方法放行
func isPublicRoute(public []string, method, route string) bool {
	if route == "" || len(public) == 0 {
		return false
	}
	for _, m := range public {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if verb, path, ok := strings.Cut(m, " "); ok {
			if strings.EqualFold(strings.TrimSpace(verb), method) && strings.TrimSpace(path) == route {
				return true
			}
			continue
		}
		if m == route {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status": "error",
		"error":  gin.H{"code": http.StatusUnauthorized, "message": msg},
	})
}
