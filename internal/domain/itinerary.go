package domain

// A purchase at a station along the route.
type FuelStop struct {
	Station           Station
	DistanceFromStart float64
	Gallons           float64
	Cost              float64
}

// Itinerary is the externally visible planning result.
// FinalLegCost is the consumption between the last stop (or the start) and
// the destination; nothing is purchased for it but it is included in
// TotalCost.
type Itinerary struct {
	RouteCoordinates []Coordinates
	FuelStops        []FuelStop
	TotalCost        float64
	TotalDistance    float64
	TotalGallons     float64
	FinalLegMiles    float64
	FinalLegCost     float64
	Strategy         string
}

// Aggregate figures over the purchased stops.
type StopSummary struct {
	NumberOfStops int
	TotalGallons  float64
	AveragePrice  float64
}

// Summary reports TotalGallons as is, so it always matches the itinerary
// total rather than a sum of per-stop rounded figures.
func (it *Itinerary) Summary() StopSummary {
	s := StopSummary{NumberOfStops: len(it.FuelStops), TotalGallons: it.TotalGallons}
	if len(it.FuelStops) == 0 {
		return s
	}

	var price float64
	for _, fs := range it.FuelStops {
		price += fs.Station.PricePerGallon
	}
	s.AveragePrice = price / float64(len(it.FuelStops))
	return s
}
