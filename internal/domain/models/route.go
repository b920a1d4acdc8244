package models

// Stop is a port of call at a fixed ordered position on a route.
type Stop struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seq  int    `json:"seq"`
}

// RouteDefinition is the ordered stop list for one route. Immutable
// reference data; sequence indices are contiguous from zero.
type RouteDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stops []Stop `json:"stops"`
}

// NumStops returns the number of stops on the route.
func (r RouteDefinition) NumStops() int { return len(r.Stops) }

// NumLegs returns the number of consecutive stop pairs.
func (r RouteDefinition) NumLegs() int {
	if len(r.Stops) == 0 {
		return 0
	}
	return len(r.Stops) - 1
}

// StopAt returns the stop at a sequence index, ok=false when out of range.
func (r RouteDefinition) StopAt(seq int) (Stop, bool) {
	if seq < 0 || seq >= len(r.Stops) {
		return Stop{}, false
	}
	return r.Stops[seq], true
}

// SegmentFare prices one bookable (origin, destination) pair, per seat.
type SegmentFare struct {
	Origin      int   `json:"origin"`
	Destination int   `json:"destination"`
	Price       int64 `json:"price"`
}
