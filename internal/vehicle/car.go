package vehicle

// Car 普通汽车：在 Base 之上增加门数/座位数（构造时固定）。
type Car struct {
	Base
	numberOfDoors int
	numberOfSeats int
}

func NewCar(model string, year int, color string, doors, seats int) *Car {
	return &Car{
		Base:          newBase(model, year, color),
		numberOfDoors: doors,
		numberOfSeats: seats,
	}
}

func (c *Car) Kind() Kind { return KindCar }

func (c *Car) Doors() int { return c.numberOfDoors }

func (c *Car) Seats() int { return c.numberOfSeats }

// Start 点火。汽车启动没有前置条件。
func (c *Car) Start() error {
	c.running = true
	return nil
}

// Stop 熄火并将速度归零（停止的车不应残留速度）。
func (c *Car) Stop() {
	c.running = false
	c.currentSpeed = 0
}
