package fleet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openfleet/openfleet/internal/common/logger"
	"github.com/openfleet/openfleet/internal/vehicle"
)

// Handler 车队目录的 HTTP 适配层。
type Handler struct {
	svc *Service
	log logger.Logger
}

func NewHandler(svc *Service, log logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes 挂载 /v1/vehicles 路由。
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/vehicles", h.Register)
	g.GET("/vehicles", h.List)
	g.GET("/vehicles/:id", h.Get)
	g.POST("/vehicles/:id/status", h.UpdateStatus)
	g.POST("/vehicles/:id/start", h.Start)
	g.POST("/vehicles/:id/stop", h.Stop)
	g.POST("/vehicles/:id/accelerate", h.Accelerate)
	g.POST("/vehicles/:id/charge", h.Charge)
}

// VehicleView 对外返回的车辆视图；电动车附带派生字段。
type VehicleView struct {
	ID          string       `json:"id"`
	PlateNumber string       `json:"plate_number"`
	Kind        vehicle.Kind `json:"kind"`
	OwnerID     string       `json:"owner_id,omitempty"`
	Status      Status       `json:"status"`

	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color,omitempty"`

	Doors      int  `json:"doors,omitempty"`
	Seats      int  `json:"seats,omitempty"`
	HasSidecar bool `json:"has_sidecar,omitempty"`

	CurrentSpeed float64 `json:"current_speed"`
	Running      bool    `json:"running"`

	BatteryCapacity float64  `json:"battery_capacity,omitempty"`
	CurrentCharge   float64  `json:"current_charge,omitempty"`
	BatteryLevel    *float64 `json:"battery_level,omitempty"`
	RemainingRange  *float64 `json:"remaining_range_km,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func toView(rec *Record) VehicleView {
	if rec == nil {
		return VehicleView{}
	}
	view := VehicleView{
		ID:           rec.ID,
		PlateNumber:  rec.PlateNumber,
		Kind:         rec.Kind,
		OwnerID:      rec.OwnerID,
		Status:       rec.Status,
		Model:        rec.Model,
		Year:         rec.Year,
		Color:        rec.Color,
		Doors:        rec.Doors,
		Seats:        rec.Seats,
		HasSidecar:   rec.HasSidecar,
		CurrentSpeed: rec.CurrentSpeed,
		Running:      rec.Running,
		CreatedAt:    rec.CreatedAt.Unix(),
		UpdatedAt:    rec.UpdatedAt.Unix(),
	}
	if rec.Kind == vehicle.KindElectricCar {
		view.BatteryCapacity = rec.BatteryCapacity
		view.CurrentCharge = rec.CurrentCharge
		// 派生字段走领域对象，保证口径一致
		if v, err := Hydrate(rec); err == nil {
			if e, ok := v.(*vehicle.ElectricCar); ok {
				level := e.BatteryLevel()
				rng := e.RemainingRange()
				view.BatteryLevel = &level
				view.RemainingRange = &rng
			}
		}
	}
	return view
}

// RegisterRequest 登记车辆的请求体。
type RegisterRequest struct {
	PlateNumber string  `json:"plate_number" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	OwnerID     string  `json:"owner_id"`
	Model       string  `json:"model" binding:"required"`
	Year        int     `json:"year"`
	Color       string  `json:"color"`
	Doors       int     `json:"doors"`
	Seats       int     `json:"seats"`
	HasSidecar  bool    `json:"has_sidecar"`
	BatteryKWh  float64 `json:"battery_capacity"`
	Efficiency  float64 `json:"efficiency_km_per_kwh"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "invalid request payload")
		return
	}

	rec, err := h.svc.Register(c.Request.Context(), RegisterInput{
		PlateNumber:     req.PlateNumber,
		Kind:            vehicle.Kind(req.Kind),
		OwnerID:         req.OwnerID,
		Model:           req.Model,
		Year:            req.Year,
		Color:           req.Color,
		Doors:           req.Doors,
		Seats:           req.Seats,
		HasSidecar:      req.HasSidecar,
		BatteryCapacity: req.BatteryKWh,
		Efficiency:      req.Efficiency,
	})
	if err != nil {
		h.badRequest(c, err, "register failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

func (h *Handler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

// ListQuery 列表过滤参数。
type ListQuery struct {
	OwnerID  string `form:"owner_id"`
	Kind     string `form:"kind"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err, "invalid query")
		return
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 || size > 200 {
		size = 20
	}

	recs, total, err := h.svc.List(c.Request.Context(), ListFilter{
		OwnerID: q.OwnerID,
		Kind:    vehicle.Kind(q.Kind),
		Status:  Status(q.Status),
		Offset:  (page - 1) * size,
		Limit:   size,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}

	views := make([]VehicleView, 0, len(recs))
	for i := range recs {
		views = append(views, toView(&recs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicles": views, "total": total})
}

// UpdateStatusRequest 生命周期流转请求体。
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "invalid request payload")
		return
	}

	rec, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), Status(req.Status), time.Now())
	if err != nil {
		h.recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

func (h *Handler) Start(c *gin.Context) {
	rec, err := h.svc.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

func (h *Handler) Stop(c *gin.Context) {
	rec, err := h.svc.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

// AmountRequest accelerate / charge 共用的请求体。
type AmountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) Accelerate(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "invalid request payload")
		return
	}
	rec, err := h.svc.Accelerate(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

func (h *Handler) Charge(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "invalid request payload")
		return
	}
	rec, err := h.svc.Charge(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicle": toView(rec)})
}

// recordError 按错误类型映射 HTTP 状态码：记录不存在 404，其余业务错误 400。
func (h *Handler) recordError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.errorResponse(c, err, http.StatusNotFound, "vehicle not found")
		return
	}
	h.badRequest(c, err, "operation failed")
}

func (h *Handler) badRequest(c *gin.Context, err error, message string) {
	h.errorResponse(c, err, http.StatusBadRequest, message)
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.errorResponse(c, err, http.StatusInternalServerError, "internal server error")
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
