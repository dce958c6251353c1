package services

import (
	"cmp"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"log"
	"math"
	"slices"
	"sort"
)

// Grid cell size used to bucket stations by position.
const gridCellDegrees = 0.5

type cellKey struct {
	row int
	col int
}

func cellOf(lat, lon float64) cellKey {
	return cellKey{
		row: int(math.Floor(lat / gridCellDegrees)),
		col: int(math.Floor(lon / gridCellDegrees)),
	}
}

// StationIndex is an immutable in-memory view of the station catalog.
//
// It is built once and never mutated afterward, so a single index can be
// shared by any number of concurrent planning requests without locking.
// Refreshing the catalog means building a new index (see StationCatalog).
type StationIndex struct {
	stations  []domain.Station
	byID      map[string]int
	grid      map[cellKey][]int
	tolerance float64
	avgPrice  float64
	skipped   int
}

// NewStationIndex builds an index over stations. Invalid records are skipped;
// when an ID repeats the cheaper record is kept.
//
// toleranceMiles is the maximum lateral distance between a station and the
// route for the station to be considered; <= 0 snaps every station.
func NewStationIndex(stations []domain.Station, toleranceMiles float64) *StationIndex {
	x := &StationIndex{
		byID:      make(map[string]int, len(stations)),
		grid:      make(map[cellKey][]int),
		tolerance: toleranceMiles,
	}

	uniq := make(map[string]domain.Station, len(stations))
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			x.skipped++
			continue
		}
		if prev, ok := uniq[s.ID]; ok && prev.PricePerGallon <= s.PricePerGallon {
			continue
		}
		uniq[s.ID] = s
	}

	x.stations = make([]domain.Station, 0, len(uniq))
	for _, s := range uniq {
		x.stations = append(x.stations, s)
	}
	slices.SortFunc(x.stations, func(a, b domain.Station) int { return cmp.Compare(a.ID, b.ID) })

	total := 0.0
	for i, s := range x.stations {
		x.byID[s.ID] = i
		k := cellOf(s.Location.Lat, s.Location.Lon)
		x.grid[k] = append(x.grid[k], i)
		total += s.PricePerGallon
	}
	if len(x.stations) > 0 {
		x.avgPrice = total / float64(len(x.stations))
	}

	if x.skipped > 0 {
		log.Printf("op=station.index skipped=%d reason=invalid_record", x.skipped)
	}

	return x
}

func (x *StationIndex) Len() int { return len(x.stations) }

// Skipped reports how many input records failed validation.
func (x *StationIndex) Skipped() int { return x.skipped }

func (x *StationIndex) Tolerance() float64 { return x.tolerance }

func (x *StationIndex) Get(id string) (domain.Station, bool) {
	i, ok := x.byID[id]
	if !ok {
		return domain.Station{}, false
	}
	return x.stations[i], true
}

// All returns a copy of every station ordered by ID.
func (x *StationIndex) All() []domain.Station {
	out := make([]domain.Station, len(x.stations))
	copy(out, x.stations)
	return out
}

// AveragePrice returns the mean price over the whole catalog.
func (x *StationIndex) AveragePrice() (float64, bool) {
	return x.avgPrice, len(x.stations) > 0
}

// StationsNear returns every station whose nearest route point falls within
// [lower, upper] miles from the start, using the index tolerance.
func (x *StationIndex) StationsNear(route *domain.Route, lower, upper float64) []domain.RouteStation {
	return x.Snap(route).StationsWithin(lower, upper)
}

// Snap assigns stations to the route polyline using the index tolerance.
// Long segments are subdivided first so stations between sparse vertices
// are not lost.
func (x *StationIndex) Snap(route *domain.Route) *RouteStations {
	return x.SnapWithin(Densify(route, DefaultSampleSpacingMiles), x.tolerance)
}

// SnapWithin assigns each station to its nearest point of route as given
// (see Densify for sparse geometries). Stations
// further than toleranceMiles from every route point are dropped, unless
// toleranceMiles <= 0.
func (x *StationIndex) SnapWithin(route *domain.Route, toleranceMiles float64) *RouteStations {
	if route == nil || len(route.Points) == 0 || len(x.stations) == 0 {
		return NewRouteStations(nil)
	}

	var best map[int]domain.RouteStation
	if toleranceMiles <= 0 {
		best = x.snapAll(route)
	} else {
		best = x.snapNearby(route, toleranceMiles)
	}

	snapped := make([]domain.RouteStation, 0, len(best))
	for _, rs := range best {
		snapped = append(snapped, rs)
	}
	return NewRouteStations(snapped)
}

func (x *StationIndex) snapAll(route *domain.Route) map[int]domain.RouteStation {
	best := make(map[int]domain.RouteStation, len(x.stations))
	for si, s := range x.stations {
		for _, p := range route.Points {
			d := geo.Miles(p.Coordinates, s.Location)
			if cur, ok := best[si]; ok && d >= cur.OffsetMiles {
				continue
			}
			best[si] = domain.RouteStation{
				Station:           s,
				DistanceFromStart: p.CumulativeMiles,
				OffsetMiles:       d,
			}
		}
	}
	return best
}

func (x *StationIndex) snapNearby(route *domain.Route, tolerance float64) map[int]domain.RouteStation {
	best := make(map[int]domain.RouteStation)
	for _, p := range route.Points {
		b := geo.BoundAround(p.Coordinates, tolerance)
		lo := cellOf(b.Min.Lat(), b.Min.Lon())
		hi := cellOf(b.Max.Lat(), b.Max.Lon())

		for row := lo.row; row <= hi.row; row++ {
			for col := lo.col; col <= hi.col; col++ {
				for _, si := range x.grid[cellKey{row: row, col: col}] {
					s := x.stations[si]
					if !b.Contains(geo.Point(s.Location)) {
						continue
					}

					d := geo.Miles(p.Coordinates, s.Location)
					if d > tolerance {
						continue
					}
					// Strict comparison keeps the earliest point on ties.
					if cur, ok := best[si]; ok && d >= cur.OffsetMiles {
						continue
					}
					best[si] = domain.RouteStation{
						Station:           s,
						DistanceFromStart: p.CumulativeMiles,
						OffsetMiles:       d,
					}
				}
			}
		}
	}
	return best
}

// RouteStations is the set of stations snapped onto one route, ordered by
// distance from start then station ID. It implements ports.StationFinder.
type RouteStations struct {
	stations []domain.RouteStation
}

func NewRouteStations(stations []domain.RouteStation) *RouteStations {
	sorted := make([]domain.RouteStation, len(stations))
	copy(sorted, stations)
	slices.SortFunc(sorted, func(a, b domain.RouteStation) int {
		if c := cmp.Compare(a.DistanceFromStart, b.DistanceFromStart); c != 0 {
			return c
		}
		return cmp.Compare(a.Station.ID, b.Station.ID)
	})
	return &RouteStations{stations: sorted}
}

func (r *RouteStations) Len() int { return len(r.stations) }

func (r *RouteStations) All() []domain.RouteStation {
	out := make([]domain.RouteStation, len(r.stations))
	copy(out, r.stations)
	return out
}

func (r *RouteStations) StationsWithin(lower, upper float64) []domain.RouteStation {
	if upper < lower {
		return []domain.RouteStation{}
	}

	start := sort.Search(len(r.stations), func(i int) bool {
		return r.stations[i].DistanceFromStart >= lower
	})
	end := sort.Search(len(r.stations), func(i int) bool {
		return r.stations[i].DistanceFromStart > upper
	})

	out := make([]domain.RouteStation, end-start)
	copy(out, r.stations[start:end])
	return out
}

func (r *RouteStations) NextAfter(position float64) (domain.RouteStation, bool) {
	i := sort.Search(len(r.stations), func(i int) bool {
		return r.stations[i].DistanceFromStart > position
	})
	if i == len(r.stations) {
		return domain.RouteStation{}, false
	}
	return r.stations[i], true
}

// AveragePrice returns the mean price of the snapped stations.
func (r *RouteStations) AveragePrice() (float64, bool) {
	if len(r.stations) == 0 {
		return 0, false
	}

	total := 0.0
	for _, rs := range r.stations {
		total += rs.Station.PricePerGallon
	}
	return total / float64(len(r.stations)), true
}
