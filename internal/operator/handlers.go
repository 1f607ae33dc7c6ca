package operator

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openfleet/openfleet/internal/common/logger"
)

// Handler 操作员账号的 HTTP 适配层。
type Handler struct {
	svc *Service
	log logger.Logger
}

func NewHandler(svc *Service, log logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes 挂载 /v1 下的账号路由。
// /login 与 POST /operators 应配置为 public method（见 config.AuthConfig）。
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/operators", h.Register)
	g.POST("/login", h.Login)
	g.GET("/operators/:id", h.Get)
	g.GET("/operators", h.List)
}

// OperatorView 对外返回的账号视图（不含口令相关字段）。
type OperatorView struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles"`
	CreatedAt   int64    `json:"created_at"`
}

func toView(o *Operator) OperatorView {
	if o == nil {
		return OperatorView{}
	}
	return OperatorView{
		ID:          o.ID,
		Username:    o.Username,
		DisplayName: o.DisplayName,
		Email:       o.Email,
		Roles:       o.RolesSlice(),
		CreatedAt:   o.CreatedAt.Unix(),
	}
}

// RegisterRequest 注册请求体。
type RegisterRequest struct {
	Username    string   `json:"username" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "invalid request payload")
		return
	}

	o, err := h.svc.Register(c.Request.Context(), RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Roles:       req.Roles,
	})
	if err != nil {
		h.badRequest(c, err, "register failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "operator": toView(o)})
}

// LoginRequest 登录请求体。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "invalid request payload")
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.errorResponse(c, err, http.StatusUnauthorized, "login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"operator":   toView(res.Operator),
		"token":      res.Token,
		"expires_at": res.ExpiresAt.Unix(),
	})
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, err, http.StatusNotFound, "operator not found")
			return
		}
		h.badRequest(c, err, "operation failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "operator": toView(o)})
}

func (h *Handler) List(c *gin.Context) {
	page := 1
	size := 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 200 {
		size = v
	}

	operators, total, err := h.svc.List(c.Request.Context(), (page-1)*size, size)
	if err != nil {
		h.errorResponse(c, err, http.StatusInternalServerError, "internal server error")
		return
	}

	views := make([]OperatorView, 0, len(operators))
	for i := range operators {
		views = append(views, toView(&operators[i]))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "operators": views, "total": total})
}

func (h *Handler) badRequest(c *gin.Context, err error, message string) {
	h.errorResponse(c, err, http.StatusBadRequest, message)
}

func (h *Handler) errorResponse(c *gin.Context, err error, statusCode int, message string) {
	msg := message
	if err != nil && statusCode != http.StatusInternalServerError {
		msg = message + ": " + err.Error()
	}
	if h.log != nil {
		h.log.WithFields(map[string]interface{}{
			"status": statusCode,
			"error":  err,
		}).Warn(message)
	}
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error":  gin.H{"code": statusCode, "message": msg},
	})
}
