package vehicle

// Motorcycle 摩托车：在 Base 之上增加边车标志（构造时固定）。
type Motorcycle struct {
	Base
	hasSidecar bool
}

func NewMotorcycle(model string, year int, color string, sidecar bool) *Motorcycle {
	return &Motorcycle{
		Base:       newBase(model, year, color),
		hasSidecar: sidecar,
	}
}

func (m *Motorcycle) Kind() Kind { return KindMotorcycle }

func (m *Motorcycle) HasSidecar() bool { return m.hasSidecar }

func (m *Motorcycle) Start() error {
	m.running = true
	return nil
}

func (m *Motorcycle) Stop() {
	m.running = false
	m.currentSpeed = 0
}
