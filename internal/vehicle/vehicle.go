package vehicle

// Kind 车辆类型枚举（持久化为字符串）。
type Kind string

const (
	KindCar         Kind = "car"
	KindMotorcycle  Kind = "motorcycle"
	KindElectricCar Kind = "electric_car"
)

// Vehicle 车辆能力集合：所有具体车型都必须实现。
// Start/Stop 由各车型自行实现（无默认语义）；Accelerate 有默认实现（见 Base）。
type Vehicle interface {
	Start() error
	Stop()
	Accelerate(amount float64)

	Kind() Kind
	Model() string
	Year() int
	Color() string
	CurrentSpeed() float64
	Running() bool
}

// Base 各车型共享的基础字段。
// 构造后 model/year/color 不可变；只有 currentSpeed 和 running 会变化。
type Base struct {
	model        string
	year         int
	color        string
	currentSpeed float64
	running      bool
}

func newBase(model string, year int, color string) Base {
	return Base{model: model, year: year, color: color}
}

func (b *Base) Model() string { return b.model }

func (b *Base) Year() int { return b.year }

func (b *Base) Color() string { return b.color }

func (b *Base) CurrentSpeed() float64 { return b.currentSpeed }

func (b *Base) Running() bool { return b.running }

// Accelerate 默认加速行为：currentSpeed += amount。
// amount 允许为负（减速），但速度下限为 0。
func (b *Base) Accelerate(amount float64) {
	b.currentSpeed += amount
	if b.currentSpeed < 0 {
		b.currentSpeed = 0
	}
}

// SetSpeed 直接覆盖当前速度（用于从存储恢复状态），同样保证非负。
func (b *Base) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	b.currentSpeed = speed
}

// SetRunning 直接覆盖运行状态（用于从存储恢复状态）。
func (b *Base) SetRunning(running bool) {
	b.running = running
}
