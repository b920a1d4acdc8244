package models

// TripStatus is the lifecycle status of a scheduled sailing.
type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripCancelled TripStatus = "cancelled"
	TripDeparted  TripStatus = "departed"
)

// Valid reports whether the status is one of the known values.
func (s TripStatus) Valid() bool {
	switch s {
	case TripScheduled, TripCancelled, TripDeparted:
		return true
	}
	return false
}

// TripInstance is one scheduled sailing of a route on a vessel. Capacity is
// the physical seat count and is immutable once any reservation exists.
type TripInstance struct {
	ID         string     `json:"id"`
	RouteID    string     `json:"route_id"`
	VesselName string     `json:"vessel_name"`
	Capacity   int        `json:"capacity"`
	Status     TripStatus `json:"status"`
	TripDate   string     `json:"trip_date"`
	TripTime   string     `json:"trip_time"`
}
