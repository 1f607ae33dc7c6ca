package vehicle

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestElectricCarConstructorFullBattery(t *testing.T) {
	e := NewElectricCar("Tesla", 2024, "White", 4, 5, 75.0)
	if e.BatteryCapacity() != 75.0 {
		t.Fatalf("capacity mismatch: %f", e.BatteryCapacity())
	}
	if e.CurrentCharge() != 75.0 {
		t.Fatalf("expected full charge on new car, got %f", e.CurrentCharge())
	}
	if !almostEqual(e.BatteryLevel(), 1.0) {
		t.Fatalf("expected battery level 1.0, got %f", e.BatteryLevel())
	}
	// 继承自 Car 的字段同样可用
	if e.Doors() != 4 || e.Seats() != 5 || e.Year() != 2024 {
		t.Fatalf("inherited accessors mismatch")
	}
	if e.Kind() != KindElectricCar {
		t.Fatalf("kind mismatch: %s", e.Kind())
	}
}

func TestChargeClampedToCapacity(t *testing.T) {
	e := NewElectricCar("Tesla", 2024, "White", 4, 5, 75.0)
	e.SetCharge(70)
	e.Charge(100)
	if e.CurrentCharge() != 75.0 {
		t.Fatalf("expected charge clamped to capacity, got %f", e.CurrentCharge())
	}
	e.Charge(-200)
	if e.CurrentCharge() != 0 {
		t.Fatalf("expected charge clamped to 0, got %f", e.CurrentCharge())
	}
}

func TestBatteryLevelAndRange(t *testing.T) {
	e := NewElectricCar("Tesla", 2024, "White", 4, 5, 75.0)
	e.SetCharge(30)
	if !almostEqual(e.BatteryLevel(), 0.4) {
		t.Fatalf("expected level 0.4, got %f", e.BatteryLevel())
	}
	if !almostEqual(e.RemainingRange(), 30*DefaultEfficiencyKmPerKWh) {
		t.Fatalf("unexpected range: %f", e.RemainingRange())
	}
	e.SetEfficiency(5)
	if !almostEqual(e.RemainingRange(), 150) {
		t.Fatalf("expected range 150 after efficiency change, got %f", e.RemainingRange())
	}

	// 容量为 0 不应产生 NaN
	zero := NewElectricCar("Husk", 2010, "Gray", 2, 2, 0)
	if zero.BatteryLevel() != 0 {
		t.Fatalf("expected level 0 for zero capacity, got %f", zero.BatteryLevel())
	}
}

func TestElectricCarStartRequiresCharge(t *testing.T) {
	e := NewElectricCar("Tesla", 2024, "White", 4, 5, 75.0)
	e.SetCharge(0)
	if err := e.Start(); err == nil {
		t.Fatalf("expected start to fail on empty battery")
	}
	e.Charge(10)
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func TestAccelerateDrainsChargeWhileRunning(t *testing.T) {
	e := NewElectricCar("Tesla", 2024, "White", 4, 5, 75.0)
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	e.Accelerate(50)
	if e.CurrentSpeed() != 50 {
		t.Fatalf("expected speed 50, got %f", e.CurrentSpeed())
	}
	want := 75.0 - 50*accelDrainKWhPerKmh
	if !almostEqual(e.CurrentCharge(), want) {
		t.Fatalf("expected charge %f after accelerate, got %f", want, e.CurrentCharge())
	}
	// 减速不耗电
	before := e.CurrentCharge()
	e.Accelerate(-20)
	if !almostEqual(e.CurrentCharge(), before) {
		t.Fatalf("expected no drain on deceleration")
	}
}
