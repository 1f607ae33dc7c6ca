package vehicle

import "testing"

func TestCarConstructorAndAccessors(t *testing.T) {
	c := NewCar("Model X", 2023, "Red", 4, 5)
	if c.Model() != "Model X" {
		t.Fatalf("model mismatch: %s", c.Model())
	}
	if c.Year() != 2023 {
		t.Fatalf("year mismatch: %d", c.Year())
	}
	if c.Color() != "Red" {
		t.Fatalf("color mismatch: %s", c.Color())
	}
	if c.Doors() != 4 || c.Seats() != 5 {
		t.Fatalf("doors/seats mismatch: %d/%d", c.Doors(), c.Seats())
	}
	if c.CurrentSpeed() != 0 {
		t.Fatalf("expected zero initial speed, got %f", c.CurrentSpeed())
	}
	if c.Kind() != KindCar {
		t.Fatalf("kind mismatch: %s", c.Kind())
	}
}

func TestAccelerateDefaultBehavior(t *testing.T) {
	vehicles := []Vehicle{
		NewCar("Model X", 2023, "Red", 4, 5),
		NewMotorcycle("CB500", 2020, "Black", false),
	}
	for _, v := range vehicles {
		v.Accelerate(30)
		v.Accelerate(12.5)
		if v.CurrentSpeed() != 42.5 {
			t.Fatalf("%s: expected speed 42.5, got %f", v.Kind(), v.CurrentSpeed())
		}
		// 减速不允许把速度减成负数
		v.Accelerate(-100)
		if v.CurrentSpeed() != 0 {
			t.Fatalf("%s: expected speed clamped to 0, got %f", v.Kind(), v.CurrentSpeed())
		}
	}
}

func TestStartStopPerVariant(t *testing.T) {
	vehicles := []Vehicle{
		NewCar("Model X", 2023, "Red", 4, 5),
		NewMotorcycle("CB500", 2020, "Black", true),
		NewElectricCar("Tesla", 2024, "White", 4, 5, 75.0),
	}
	for _, v := range vehicles {
		if v.Running() {
			t.Fatalf("%s: expected not running initially", v.Kind())
		}
		if err := v.Start(); err != nil {
			t.Fatalf("%s: Start: %v", v.Kind(), err)
		}
		if !v.Running() {
			t.Fatalf("%s: expected running after Start", v.Kind())
		}
		v.Accelerate(50)
		v.Stop()
		if v.Running() {
			t.Fatalf("%s: expected not running after Stop", v.Kind())
		}
		if v.CurrentSpeed() != 0 {
			t.Fatalf("%s: expected speed zeroed after Stop, got %f", v.Kind(), v.CurrentSpeed())
		}
	}
}

func TestMotorcycleSidecar(t *testing.T) {
	with := NewMotorcycle("Ural", 2019, "Green", true)
	without := NewMotorcycle("CB500", 2020, "Black", false)
	if !with.HasSidecar() {
		t.Fatalf("expected sidecar")
	}
	if without.HasSidecar() {
		t.Fatalf("expected no sidecar")
	}
}
