package domain

// A point on the route tagged with its cumulative driving distance (miles)
// from the start.
type RoutePoint struct {
	Coordinates
	CumulativeMiles float64
}

// Represents a sampled route. Points are ordered start to finish, the
// first point has CumulativeMiles == 0 and the last carries the total.
// A Route is produced once by the sampler and never mutated afterward.
type Route struct {
	Points []RoutePoint
}

func (r *Route) TotalMiles() float64 {
	if r == nil || len(r.Points) == 0 {
		return 0
	}
	return r.Points[len(r.Points)-1].CumulativeMiles
}

func (r *Route) Start() Coordinates { return r.Points[0].Coordinates }

func (r *Route) End() Coordinates { return r.Points[len(r.Points)-1].Coordinates }

func (r *Route) Coordinates() []Coordinates {
	out := make([]Coordinates, 0, len(r.Points))
	for _, p := range r.Points {
		out = append(out, p.Coordinates)
	}
	return out
}

// Window is a reachable span of cumulative distance.
type Window struct {
	Start float64
	End   float64
}
