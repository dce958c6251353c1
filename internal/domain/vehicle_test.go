package domain

import (
	"errors"
	"math"
	"testing"
)

func TestVehicleValidate(t *testing.T) {
	tests := []struct {
		name    string
		vehicle Vehicle
		field   string
	}{
		{name: "defaults", vehicle: DefaultVehicle()},
		{name: "zero mpg", vehicle: Vehicle{MaxRangeMiles: 500, MilesPerGallon: 0, StartTankFull: true}, field: "miles_per_gallon"},
		{name: "negative range", vehicle: Vehicle{MaxRangeMiles: -1, MilesPerGallon: 10, StartTankFull: true}, field: "max_range_miles"},
		{name: "nan range", vehicle: Vehicle{MaxRangeMiles: math.NaN(), MilesPerGallon: 10, StartTankFull: true}, field: "max_range_miles"},
		{name: "partial tank", vehicle: Vehicle{MaxRangeMiles: 500, MilesPerGallon: 10, StartFuelGallons: 20}},
		{name: "overfilled tank", vehicle: Vehicle{MaxRangeMiles: 500, MilesPerGallon: 10, StartFuelGallons: 51}, field: "start_fuel_gallons"},
		{name: "negative fuel", vehicle: Vehicle{MaxRangeMiles: 500, MilesPerGallon: 10, StartFuelGallons: -1}, field: "start_fuel_gallons"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.vehicle.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *InvalidVehicleParametersError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *InvalidVehicleParametersError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
			if !errors.Is(err, ErrPlanning) {
				t.Errorf("expected error to match ErrPlanning")
			}
		})
	}
}

func TestVehicleInitialRange(t *testing.T) {
	full := DefaultVehicle()
	if got := full.InitialRange(); got != 500 {
		t.Fatalf("full tank initial range = %v, want 500", got)
	}

	partial := Vehicle{MaxRangeMiles: 500, MilesPerGallon: 10, StartFuelGallons: 12.5}
	if got := partial.InitialRange(); got != 125 {
		t.Fatalf("partial tank initial range = %v, want 125", got)
	}

	if got := partial.TankGallons(); got != 50 {
		t.Fatalf("tank gallons = %v, want 50", got)
	}
}

func TestCoordinatesValidateAndConvert(t *testing.T) {
	if err := (Coordinates{Lat: 41.88, Lon: -87.63}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Coordinates{Lat: 91, Lon: 0}).Validate(); err == nil {
		t.Fatalf("expected latitude range error")
	}
	if err := (Coordinates{Lat: 0, Lon: math.Inf(1)}).Validate(); err == nil {
		t.Fatalf("expected non-finite longitude error")
	}

	coords, err := FromLonLat([][]float64{{-87.63, 41.88}, {-90.2, 38.6}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords[0].Lat != 41.88 || coords[0].Lon != -87.63 {
		t.Errorf("coords[0] = %+v, want lat=41.88 lon=-87.63", coords[0])
	}

	back := ToLonLat(coords)
	if back[1][0] != -90.2 || back[1][1] != 38.6 {
		t.Errorf("back[1] = %v, want [-90.2 38.6]", back[1])
	}

	if _, err := FromLonLat([][]float64{{1}}); err == nil {
		t.Errorf("expected error for short pair")
	}
}

func TestItinerarySummary(t *testing.T) {
	it := &Itinerary{
		FuelStops: []FuelStop{
			{Station: Station{ID: "1", PricePerGallon: 3.0}, Gallons: 30},
			{Station: Station{ID: "2", PricePerGallon: 4.0}, Gallons: 20},
		},
		TotalGallons: 50,
	}

	s := it.Summary()
	if s.NumberOfStops != 2 {
		t.Fatalf("stops = %d, want 2", s.NumberOfStops)
	}
	if s.TotalGallons != 50 {
		t.Errorf("total gallons = %v, want 50", s.TotalGallons)
	}
	if s.AveragePrice != 3.5 {
		t.Errorf("average price = %v, want 3.5", s.AveragePrice)
	}

	empty := (&Itinerary{}).Summary()
	if empty.NumberOfStops != 0 || empty.AveragePrice != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
