package vehicle

import "fmt"

// DefaultEfficiencyKmPerKWh 默认续航效率（km/kWh）。
// 原始模型未给出续航公式，这里采用线性模型：range = charge * efficiency。
const DefaultEfficiencyKmPerKWh = 6.0

// accelDrainKWhPerKmh 加速耗电系数：每提升 1 km/h 消耗的电量（kWh）。
const accelDrainKWhPerKmh = 0.01

// ElectricCar 电动汽车：在 Car 之上增加电池容量/当前电量。
// 不变式：0 <= currentCharge <= batteryCapacity。
type ElectricCar struct {
	Car
	batteryCapacity    float64
	currentCharge      float64
	efficiencyKmPerKWh float64
}

// NewElectricCar 创建电动汽车，新车默认满电。
func NewElectricCar(model string, year int, color string, doors, seats int, capacityKWh float64) *ElectricCar {
	if capacityKWh < 0 {
		capacityKWh = 0
	}
	return &ElectricCar{
		Car:                *NewCar(model, year, color, doors, seats),
		batteryCapacity:    capacityKWh,
		currentCharge:      capacityKWh,
		efficiencyKmPerKWh: DefaultEfficiencyKmPerKWh,
	}
}

func (e *ElectricCar) Kind() Kind { return KindElectricCar }

func (e *ElectricCar) BatteryCapacity() float64 { return e.batteryCapacity }

func (e *ElectricCar) CurrentCharge() float64 { return e.currentCharge }

// SetEfficiency 调整续航效率（km/kWh），非正值忽略。
func (e *ElectricCar) SetEfficiency(kmPerKWh float64) {
	if kmPerKWh > 0 {
		e.efficiencyKmPerKWh = kmPerKWh
	}
}

// SetCharge 直接覆盖当前电量（用于从存储恢复状态），裁剪到 [0, capacity]。
func (e *ElectricCar) SetCharge(kwh float64) {
	e.currentCharge = e.clampCharge(kwh)
}

// Charge 充电：电量增加 amount，上限为电池容量。
// amount 允许为负（放电），下限为 0。
func (e *ElectricCar) Charge(amount float64) {
	e.currentCharge = e.clampCharge(e.currentCharge + amount)
}

// BatteryLevel 返回电量百分比（0~1）。容量为 0 时返回 0，避免 NaN。
func (e *ElectricCar) BatteryLevel() float64 {
	if e.batteryCapacity <= 0 {
		return 0
	}
	return e.currentCharge / e.batteryCapacity
}

// RemainingRange 估算剩余续航（km）：charge * efficiency。
func (e *ElectricCar) RemainingRange() float64 {
	return e.currentCharge * e.efficiencyKmPerKWh
}

// Start 电车的启动前置条件：有电才允许启动。
func (e *ElectricCar) Start() error {
	if e.currentCharge <= 0 {
		return fmt.Errorf("battery is empty")
	}
	e.running = true
	return nil
}

// Accelerate 在默认加速行为之上叠加耗电：
// 运行中每提升 1 km/h 消耗 accelDrainKWhPerKmh 的电量（减速不耗电）。
func (e *ElectricCar) Accelerate(amount float64) {
	e.Car.Accelerate(amount)
	if e.running && amount > 0 {
		e.currentCharge = e.clampCharge(e.currentCharge - amount*accelDrainKWhPerKmh)
	}
}

func (e *ElectricCar) clampCharge(kwh float64) float64 {
	if kwh < 0 {
		return 0
	}
	if kwh > e.batteryCapacity {
		return e.batteryCapacity
	}
	return kwh
}
