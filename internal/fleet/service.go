package fleet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openfleet/openfleet/internal/common/logger"
	"github.com/openfleet/openfleet/internal/common/metrics"
	"github.com/openfleet/openfleet/internal/vehicle"
)

// Repository 车辆记录的存取接口；生产环境用 gorm 的 *Repo，测试可替换内存实现。
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, f ListFilter) ([]Record, int64, error)
}

// Service 封装车队目录的核心用例（不依赖 HTTP / gRPC），便于复用和测试。
type Service struct {
	repo   Repository
	events Publisher
	log    logger.Logger
}

func NewService(repo Repository, events Publisher, log logger.Logger) *Service {
	return &Service{repo: repo, events: events, log: log}
}

// RegisterInput 登记车辆的入参（可作为传输层 DTO 的基础）。
type RegisterInput struct {
	PlateNumber string
	Kind        vehicle.Kind
	OwnerID     string

	Model string
	Year  int
	Color string

	Doors      int
	Seats      int
	HasSidecar bool

	BatteryCapacity float64 // electric_car 必填（kWh）
	Efficiency      float64 // km/kWh，0 表示用默认值
}

// Register 登记新车辆：校验入参，按车型补默认值，初始状态 registered。
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	plate := strings.TrimSpace(in.PlateNumber)
	if plate == "" {
		return nil, fmt.Errorf("plate_number required")
	}
	model := strings.TrimSpace(in.Model)
	if model == "" {
		return nil, fmt.Errorf("model required")
	}

	rec := &Record{
		ID:          uuid.NewString(),
		PlateNumber: plate,
		Kind:        in.Kind,
		OwnerID:     strings.TrimSpace(in.OwnerID),
		Status:      StatusRegistered,
		Model:       model,
		Year:        in.Year,
		Color:       strings.TrimSpace(in.Color),
	}

	switch in.Kind {
	case vehicle.KindCar:
		rec.Doors = in.Doors
		rec.Seats = in.Seats
	case vehicle.KindMotorcycle:
		rec.HasSidecar = in.HasSidecar
	case vehicle.KindElectricCar:
		if in.BatteryCapacity <= 0 {
			return nil, fmt.Errorf("battery_capacity must be positive for electric_car")
		}
		rec.Doors = in.Doors
		rec.Seats = in.Seats
		rec.BatteryCapacity = in.BatteryCapacity
		// 新车满电
		rec.CurrentCharge = in.BatteryCapacity
		rec.Efficiency = in.Efficiency
		if rec.Efficiency <= 0 {
			rec.Efficiency = vehicle.DefaultEfficiencyKmPerKWh
		}
	default:
		return nil, fmt.Errorf("unknown vehicle kind: %s", in.Kind)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Type:      EventRegistered,
		VehicleID: rec.ID,
		Kind:      rec.Kind,
		Status:    rec.Status,
		At:        time.Now(),
	})
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("id required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Record, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	f.OwnerID = strings.TrimSpace(f.OwnerID)
	return s.repo.List(ctx, f)
}

// UpdateStatus 根据生命周期状态机进行流转。
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status, now time.Time) (*Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("id required")
	}
	if to == "" {
		return nil, fmt.Errorf("target status required")
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ApplyTransition(rec, to, now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Type:      EventStatusChanged,
		VehicleID: rec.ID,
		Kind:      rec.Kind,
		Status:    rec.Status,
		Speed:     rec.CurrentSpeed,
		At:        now,
	})
	return rec, nil
}

// Start 启动车辆。只有运营中（active）的车辆可以启动。
func (s *Service) Start(ctx context.Context, id string) (*Record, error) {
	return s.behaviorOp(ctx, id, "start", EventStarted, func(v vehicle.Vehicle) error {
		return v.Start()
	})
}

// Stop 熄火并清零速度。
func (s *Service) Stop(ctx context.Context, id string) (*Record, error) {
	return s.behaviorOp(ctx, id, "stop", EventStopped, func(v vehicle.Vehicle) error {
		v.Stop()
		return nil
	})
}

// Accelerate 调整速度（amount 可为负）。
func (s *Service) Accelerate(ctx context.Context, id string, amount float64) (*Record, error) {
	return s.behaviorOp(ctx, id, "accelerate", EventAccelerated, func(v vehicle.Vehicle) error {
		v.Accelerate(amount)
		return nil
	})
}

// Charge 充电，仅电动车支持。
func (s *Service) Charge(ctx context.Context, id string, amount float64) (*Record, error) {
	return s.behaviorOp(ctx, id, "charge", EventCharged, func(v vehicle.Vehicle) error {
		e, ok := v.(*vehicle.ElectricCar)
		if !ok {
			return fmt.Errorf("vehicle is not electric")
		}
		e.Charge(amount)
		return nil
	})
}

// behaviorOp 行为操作的统一骨架：取记录 -> 还原领域对象 -> 执行 -> 写回 -> 发事件。
func (s *Service) behaviorOp(ctx context.Context, id, op, eventType string, fn func(vehicle.Vehicle) error) (*Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("id required")
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		metrics.FleetOps.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	// 行为操作只对投入运营的车辆开放；charge 在维保中也允许。
	if rec.Status != StatusActive && !(op == "charge" && rec.Status == StatusMaintenance) {
		metrics.FleetOps.WithLabelValues(op, "rejected").Inc()
		return nil, fmt.Errorf("vehicle %s is not active (status=%s)", id, rec.Status)
	}

	v, err := Hydrate(rec)
	if err != nil {
		metrics.FleetOps.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	if err := fn(v); err != nil {
		metrics.FleetOps.WithLabelValues(op, "rejected").Inc()
		return nil, err
	}
	if err := Dehydrate(v, rec); err != nil {
		metrics.FleetOps.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		metrics.FleetOps.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	metrics.FleetOps.WithLabelValues(op, "ok").Inc()

	s.publish(ctx, Event{
		Type:      eventType,
		VehicleID: rec.ID,
		Kind:      rec.Kind,
		Status:    rec.Status,
		Speed:     rec.CurrentSpeed,
		Charge:    rec.CurrentCharge,
		At:        time.Now(),
	})
	return rec, nil
}

// publish 事件发送失败只记日志，不影响业务操作结果。
func (s *Service) publish(ctx context.Context, e Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil && s.log != nil {
		s.log.Warnf("failed to publish event type=%s vehicle=%s: %v", e.Type, e.VehicleID, err)
	}
}
