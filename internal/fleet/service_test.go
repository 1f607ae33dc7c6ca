package fleet

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfleet/openfleet/internal/vehicle"
)

// memRepo 内存 Repository，供用例测试使用。
type memRepo struct {
	records map[string]*Record
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]*Record)}
}

func (m *memRepo) Create(ctx context.Context, rec *Record) error {
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *memRepo) Update(ctx context.Context, rec *Record) error {
	if _, ok := m.records[rec.ID]; !ok {
		return fmt.Errorf("record not found: %s", rec.ID)
	}
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *memRepo) FindByID(ctx context.Context, id string) (*Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("record not found: %s", id)
	}
	cp := *rec
	return &cp, nil
}

func (m *memRepo) List(ctx context.Context, f ListFilter) ([]Record, int64, error) {
	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

// memPublisher 记录发出的事件。
type memPublisher struct {
	events []Event
}

func (p *memPublisher) Publish(ctx context.Context, e Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *memPublisher) Close() error { return nil }

func newTestService(t *testing.T) (*Service, *memPublisher) {
	t.Helper()
	pub := &memPublisher{}
	return NewService(newMemRepo(), pub, nil), pub
}

func registerEV(t *testing.T, svc *Service) *Record {
	t.Helper()
	rec, err := svc.Register(context.Background(), RegisterInput{
		PlateNumber:     "EV-001",
		Kind:            vehicle.KindElectricCar,
		Model:           "Tesla",
		Year:            2024,
		Doors:           4,
		Seats:           5,
		BatteryCapacity: 75,
	})
	require.NoError(t, err)
	return rec
}

func TestBehaviorOpsRequireActiveStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := registerEV(t, svc)

	// registered：所有行为操作拒绝
	_, err := svc.Start(ctx, rec.ID)
	require.Error(t, err)
	_, err = svc.Accelerate(ctx, rec.ID, 10)
	require.Error(t, err)
	_, err = svc.Charge(ctx, rec.ID, 5)
	require.Error(t, err)

	// active：启动成功
	_, err = svc.UpdateStatus(ctx, rec.ID, StatusActive, rec.CreatedAt)
	require.NoError(t, err)
	got, err := svc.Start(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, got.Running)
}

func TestChargeAllowedInMaintenance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := registerEV(t, svc)

	_, err := svc.UpdateStatus(ctx, rec.ID, StatusActive, rec.CreatedAt)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, rec.ID, StatusMaintenance, rec.CreatedAt)
	require.NoError(t, err)

	// maintenance：charge 放行，其余行为操作拒绝
	_, err = svc.Start(ctx, rec.ID)
	require.Error(t, err)
	_, err = svc.Accelerate(ctx, rec.ID, 10)
	require.Error(t, err)

	got, err := svc.Charge(ctx, rec.ID, -10)
	require.NoError(t, err)
	require.Equal(t, 65.0, got.CurrentCharge)
}

func TestChargeRejectsNonElectric(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Register(ctx, RegisterInput{
		PlateNumber: "CAR-001",
		Kind:        vehicle.KindCar,
		Model:       "Model X",
		Year:        2023,
		Doors:       4,
		Seats:       5,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, rec.ID, StatusActive, rec.CreatedAt)
	require.NoError(t, err)
	_, err = svc.Charge(ctx, rec.ID, 5)
	require.Error(t, err)
}

func TestRegisterValidationAndEvents(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	// 电动车必须给正的电池容量
	_, err := svc.Register(ctx, RegisterInput{
		PlateNumber: "EV-002",
		Kind:        vehicle.KindElectricCar,
		Model:       "Tesla",
	})
	require.Error(t, err)

	rec := registerEV(t, svc)
	require.Equal(t, StatusRegistered, rec.Status)
	require.Equal(t, rec.BatteryCapacity, rec.CurrentCharge, "new EV should be registered full")
	require.Equal(t, vehicle.DefaultEfficiencyKmPerKWh, rec.Efficiency)

	require.Len(t, pub.events, 1)
	require.Equal(t, EventRegistered, pub.events[0].Type)
	require.Equal(t, rec.ID, pub.events[0].VehicleID)
}
