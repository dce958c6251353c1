package dto

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlanRequest describes a trip either by free-text endpoints, explicit
// endpoint coordinates, or a full route geometry ([lon, lat] pairs).
// Vehicle fields left out fall back to the configured defaults.
type PlanRequest struct {
	Start            string      `json:"start"`
	End              string      `json:"end"`
	StartLocation    *Location   `json:"start_location"`
	EndLocation      *Location   `json:"end_location"`
	RouteCoordinates [][]float64 `json:"route_coordinates"`
	MaxRangeMiles    *float64    `json:"max_range_miles"`
	MilesPerGallon   *float64    `json:"miles_per_gallon"`
	StartTankFull    *bool       `json:"start_tank_full"`
	StartFuelGallons *float64    `json:"start_fuel_gallons"`
	Strategy         string      `json:"strategy"`
}

type FuelStopResponse struct {
	StationID         string   `json:"station_id"`
	Name              string   `json:"name"`
	Address           string   `json:"address,omitempty"`
	City              string   `json:"city,omitempty"`
	State             string   `json:"state,omitempty"`
	Location          Location `json:"location"`
	Price             float64  `json:"price"`
	DistanceFromStart float64  `json:"distance_from_start"`
	Gallons           float64  `json:"gallons"`
	Cost              float64  `json:"cost"`
}

type SummaryResponse struct {
	NumberOfStops int     `json:"number_of_stops"`
	TotalGallons  float64 `json:"total_gallons"`
	AveragePrice  float64 `json:"average_price"`
}

type PlanResponse struct {
	RouteCoordinates [][]float64        `json:"route_coordinates"`
	MapURL           string             `json:"map_url,omitempty"`
	FuelStops        []FuelStopResponse `json:"fuel_stops"`
	TotalCost        float64            `json:"total_cost"`
	TotalDistance    float64            `json:"total_distance"`
	TotalGallons     float64            `json:"total_gallons"`
	FinalLegCost     float64            `json:"final_leg_cost"`
	Strategy         string             `json:"strategy"`
	Summary          SummaryResponse    `json:"summary"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}
