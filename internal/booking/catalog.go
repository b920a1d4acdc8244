package booking

import (
	"fmt"
	"sort"

	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

// Segment is one bookable (origin, destination) pair with its fare and the
// seats still available on every crossed leg.
type Segment struct {
	Origin          int         `json:"origin"`
	Destination     int         `json:"destination"`
	OriginStop      models.Stop `json:"origin_stop"`
	DestinationStop models.Stop `json:"destination_stop"`
	Fare            int64       `json:"fare"`
	AvailableSeats  int         `json:"available_seats"`
}

// SegmentCatalog derives the bookable segments of one route from its stop
// list and flat per-pair fare table. Malformed reference data fails the
// build; queries never raise configuration errors.
type SegmentCatalog struct {
	route models.RouteDefinition
	fares map[fareKey]int64
}

type fareKey struct {
	origin      int
	destination int
}

// NewSegmentCatalog validates the route and fare table and builds the
// catalog. Every pair 0 <= o < d < stops must be priced.
func NewSegmentCatalog(route models.RouteDefinition, fares []models.SegmentFare) (*SegmentCatalog, error) {
	if route.NumStops() < 2 {
		return nil, domain.ConfigurationError{Msg: fmt.Sprintf("route %s has %d stops, need at least 2", route.ID, route.NumStops())}
	}
	for i, stop := range route.Stops {
		if stop.Seq != i {
			return nil, domain.ConfigurationError{Msg: fmt.Sprintf("route %s: stop %s has seq %d, want %d", route.ID, stop.ID, stop.Seq, i)}
		}
	}

	table := make(map[fareKey]int64, len(fares))
	for _, f := range fares {
		if f.Origin < 0 || f.Destination <= f.Origin || f.Destination >= route.NumStops() {
			return nil, domain.ConfigurationError{Msg: fmt.Sprintf("route %s: fare pair [%d,%d) out of range", route.ID, f.Origin, f.Destination)}
		}
		if f.Price <= 0 {
			return nil, domain.ConfigurationError{Msg: fmt.Sprintf("route %s: fare pair [%d,%d) has non-positive price", route.ID, f.Origin, f.Destination)}
		}
		key := fareKey{f.Origin, f.Destination}
		if _, dup := table[key]; dup {
			return nil, domain.ConfigurationError{Msg: fmt.Sprintf("route %s: duplicate fare pair [%d,%d)", route.ID, f.Origin, f.Destination)}
		}
		table[key] = f.Price
	}
	for o := 0; o < route.NumStops()-1; o++ {
		for d := o + 1; d < route.NumStops(); d++ {
			if _, ok := table[fareKey{o, d}]; !ok {
				return nil, domain.ConfigurationError{Msg: fmt.Sprintf("route %s: missing fare for pair [%d,%d)", route.ID, o, d)}
			}
		}
	}

	return &SegmentCatalog{route: route, fares: table}, nil
}

// Route returns the route the catalog was built from.
func (c *SegmentCatalog) Route() models.RouteDefinition { return c.route }

// Fare returns the per-seat price of a segment.
func (c *SegmentCatalog) Fare(origin, destination int) (int64, error) {
	price, ok := c.fares[fareKey{origin, destination}]
	if !ok {
		return 0, domain.InvalidRangeError{Origin: origin, Destination: destination, Stops: c.route.NumStops()}
	}
	return price, nil
}

// ListSegments enumerates the bookable pairs with live availability from the
// given ledger, ordered by origin then destination. Pairs with fewer than
// minSeats free are skipped when minSeats > 0.
func (c *SegmentCatalog) ListSegments(ledger LegLedger, minSeats int) ([]Segment, error) {
	out := make([]Segment, 0, len(c.fares))
	for key, price := range c.fares {
		available, err := ledger.AvailableSeats(key.origin, key.destination)
		if err != nil {
			return nil, err
		}
		if minSeats > 0 && available < minSeats {
			continue
		}
		out = append(out, Segment{
			Origin:          key.origin,
			Destination:     key.destination,
			OriginStop:      c.route.Stops[key.origin],
			DestinationStop: c.route.Stops[key.destination],
			Fare:            price,
			AvailableSeats:  available,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Destination < out[j].Destination
	})
	return out, nil
}

// CatalogSet indexes the catalogs of all configured routes.
type CatalogSet struct {
	byRoute map[string]*SegmentCatalog
}

// NewCatalogSet builds one catalog per route. Routes without a fare table,
// and fares without a route, are configuration errors.
func NewCatalogSet(routes []models.RouteDefinition, fares map[string][]models.SegmentFare) (*CatalogSet, error) {
	set := &CatalogSet{byRoute: make(map[string]*SegmentCatalog, len(routes))}
	for _, route := range routes {
		if _, dup := set.byRoute[route.ID]; dup {
			return nil, domain.ConfigurationError{Msg: fmt.Sprintf("duplicate route %s", route.ID)}
		}
		catalog, err := NewSegmentCatalog(route, fares[route.ID])
		if err != nil {
			return nil, err
		}
		set.byRoute[route.ID] = catalog
	}
	for routeID := range fares {
		if _, ok := set.byRoute[routeID]; !ok {
			return nil, domain.ConfigurationError{Msg: fmt.Sprintf("fares reference unknown route %s", routeID)}
		}
	}
	return set, nil
}

// ForRoute returns the catalog of one route.
func (s *CatalogSet) ForRoute(routeID string) (*SegmentCatalog, error) {
	catalog, ok := s.byRoute[routeID]
	if !ok {
		return nil, domain.NotFoundError{Resource: "route", ID: routeID}
	}
	return catalog, nil
}
