package fleet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfleet/openfleet/internal/vehicle"
)

func TestHydrateDehydrateRoundTrip(t *testing.T) {
	rec := &Record{
		ID:              "v-1",
		Kind:            vehicle.KindElectricCar,
		Model:           "Tesla",
		Year:            2024,
		Color:           "White",
		Doors:           4,
		Seats:           5,
		BatteryCapacity: 75.0,
		CurrentCharge:   40.0,
		Efficiency:      5.0,
		CurrentSpeed:    0,
		Running:         false,
	}

	v, err := Hydrate(rec)
	require.NoError(t, err)

	e, ok := v.(*vehicle.ElectricCar)
	require.True(t, ok, "expected *vehicle.ElectricCar, got %T", v)
	require.Equal(t, 40.0, e.CurrentCharge())
	require.Equal(t, "Tesla", e.Model())
	require.Equal(t, 4, e.Doors())

	require.NoError(t, e.Start())
	e.Accelerate(30)
	e.Charge(10)

	require.NoError(t, Dehydrate(e, rec))
	require.True(t, rec.Running)
	require.Equal(t, 30.0, rec.CurrentSpeed)
	require.Equal(t, e.CurrentCharge(), rec.CurrentCharge)
}

func TestHydrateAllKinds(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
	}{
		{"car", Record{Kind: vehicle.KindCar, Model: "Model X", Year: 2023, Color: "Red", Doors: 4, Seats: 5}},
		{"motorcycle", Record{Kind: vehicle.KindMotorcycle, Model: "Ural", Year: 2019, HasSidecar: true}},
		{"electric", Record{Kind: vehicle.KindElectricCar, Model: "Tesla", Year: 2024, Doors: 4, Seats: 5, BatteryCapacity: 75}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Hydrate(&tc.rec)
			require.NoError(t, err)
			require.Equal(t, tc.rec.Kind, v.Kind())
			require.Equal(t, tc.rec.Model, v.Model())
			require.Equal(t, tc.rec.Year, v.Year())
		})
	}
}

func TestHydrateRejectsUnknownKind(t *testing.T) {
	_, err := Hydrate(&Record{Kind: "hovercraft"})
	require.Error(t, err)

	_, err = Hydrate(nil)
	require.Error(t, err)
}

func TestDehydrateRejectsKindMismatch(t *testing.T) {
	c := vehicle.NewCar("Model X", 2023, "Red", 4, 5)
	rec := &Record{Kind: vehicle.KindMotorcycle}
	require.Error(t, Dehydrate(c, rec))
}
