package fleet

import (
	"fmt"

	"github.com/openfleet/openfleet/internal/vehicle"
)

// Hydrate 把持久化记录还原为领域对象。
// 未知车型或非法的电动车记录返回错误。
func Hydrate(r *Record) (vehicle.Vehicle, error) {
	if r == nil {
		return nil, fmt.Errorf("record is nil")
	}

	switch r.Kind {
	case vehicle.KindCar:
		c := vehicle.NewCar(r.Model, r.Year, r.Color, r.Doors, r.Seats)
		c.SetSpeed(r.CurrentSpeed)
		c.SetRunning(r.Running)
		return c, nil

	case vehicle.KindMotorcycle:
		m := vehicle.NewMotorcycle(r.Model, r.Year, r.Color, r.HasSidecar)
		m.SetSpeed(r.CurrentSpeed)
		m.SetRunning(r.Running)
		return m, nil

	case vehicle.KindElectricCar:
		if r.BatteryCapacity < 0 {
			return nil, fmt.Errorf("invalid battery capacity: %f", r.BatteryCapacity)
		}
		e := vehicle.NewElectricCar(r.Model, r.Year, r.Color, r.Doors, r.Seats, r.BatteryCapacity)
		e.SetCharge(r.CurrentCharge)
		e.SetEfficiency(r.Efficiency)
		e.SetSpeed(r.CurrentSpeed)
		e.SetRunning(r.Running)
		return e, nil

	default:
		return nil, fmt.Errorf("unknown vehicle kind: %s", r.Kind)
	}
}

// Dehydrate 把领域对象的行为状态写回记录（速度/运行标志/电量）。
// 基础属性构造后不变，不在这里回写。
func Dehydrate(v vehicle.Vehicle, r *Record) error {
	if v == nil || r == nil {
		return fmt.Errorf("vehicle or record is nil")
	}
	if v.Kind() != r.Kind {
		return fmt.Errorf("kind mismatch: %s vs %s", v.Kind(), r.Kind)
	}

	r.CurrentSpeed = v.CurrentSpeed()
	r.Running = v.Running()

	if e, ok := v.(*vehicle.ElectricCar); ok {
		r.CurrentCharge = e.CurrentCharge()
	}
	return nil
}
