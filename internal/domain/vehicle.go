package domain

import "math"

const (
	DefaultMaxRangeMiles  = 500.0
	DefaultMilesPerGallon = 10.0
)

// Vehicle parameters for a single planning request.
// When StartTankFull is false the trip begins with StartFuelGallons.
type Vehicle struct {
	MaxRangeMiles    float64
	MilesPerGallon   float64
	StartTankFull    bool
	StartFuelGallons float64
}

func DefaultVehicle() Vehicle {
	return Vehicle{
		MaxRangeMiles:  DefaultMaxRangeMiles,
		MilesPerGallon: DefaultMilesPerGallon,
		StartTankFull:  true,
	}
}

func (v Vehicle) Validate() error {
	if !positive(v.MilesPerGallon) {
		return &InvalidVehicleParametersError{Field: "miles_per_gallon", Value: v.MilesPerGallon}
	}
	if !positive(v.MaxRangeMiles) {
		return &InvalidVehicleParametersError{Field: "max_range_miles", Value: v.MaxRangeMiles}
	}
	if !v.StartTankFull {
		g := v.StartFuelGallons
		if math.IsNaN(g) || math.IsInf(g, 0) || g < 0 || g > v.TankGallons()+1e-9 {
			return &InvalidVehicleParametersError{Field: "start_fuel_gallons", Value: g}
		}
	}
	return nil
}

// TankGallons is the usable tank capacity implied by range and efficiency.
func (v Vehicle) TankGallons() float64 { return v.MaxRangeMiles / v.MilesPerGallon }

// InitialRange is the distance coverable before the first stop.
func (v Vehicle) InitialRange() float64 {
	if v.StartTankFull {
		return v.MaxRangeMiles
	}
	return math.Min(v.StartFuelGallons*v.MilesPerGallon, v.MaxRangeMiles)
}

func positive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
