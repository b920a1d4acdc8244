package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ferry-backend/internal/booking"
	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

// CatalogFile is the YAML reference-data file: routes with their stops and
// fare tables, plus the trip instances to seed.
type CatalogFile struct {
	Routes []RouteConfig `yaml:"routes" validate:"required,min=1,dive"`
	Trips  []TripConfig  `yaml:"trips" validate:"dive"`
}

type RouteConfig struct {
	ID    string       `yaml:"id" validate:"required"`
	Name  string       `yaml:"name"`
	Stops []StopConfig `yaml:"stops" validate:"required,min=2,dive"`
	Fares []FareConfig `yaml:"fares" validate:"required,min=1,dive"`
}

type StopConfig struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

type FareConfig struct {
	Origin      int   `yaml:"origin" validate:"gte=0"`
	Destination int   `yaml:"destination" validate:"gt=0"`
	Price       int64 `yaml:"price" validate:"gt=0"`
}

type TripConfig struct {
	ID       string `yaml:"id" validate:"required"`
	Route    string `yaml:"route" validate:"required"`
	Vessel   string `yaml:"vessel"`
	Capacity int    `yaml:"capacity" validate:"gt=0"`
	Date     string `yaml:"date"`
	Time     string `yaml:"time"`
	Status   string `yaml:"status"`
}

// LoadCatalog reads and validates the catalog file and builds the segment
// catalogs. Any defect is a ConfigurationError; nothing is deferred to
// query time.
func LoadCatalog(path string) (*booking.CatalogSet, []models.TripInstance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, domain.ConfigurationError{Msg: "gagal membaca " + path, Err: err}
	}
	return ParseCatalog(data)
}

// ParseCatalog builds catalogs and seed trips from raw YAML.
func ParseCatalog(data []byte) (*booking.CatalogSet, []models.TripInstance, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, domain.ConfigurationError{Msg: "katalog bukan YAML valid", Err: err}
	}
	v := validator.New()
	if err := v.Struct(file); err != nil {
		return nil, nil, domain.ConfigurationError{Msg: "katalog tidak lolos validasi", Err: err}
	}

	routes := make([]models.RouteDefinition, 0, len(file.Routes))
	fares := make(map[string][]models.SegmentFare, len(file.Routes))
	for _, rc := range file.Routes {
		route := models.RouteDefinition{ID: rc.ID, Name: rc.Name}
		for i, sc := range rc.Stops {
			route.Stops = append(route.Stops, models.Stop{ID: sc.ID, Name: sc.Name, Seq: i})
		}
		routes = append(routes, route)
		for _, fc := range rc.Fares {
			fares[rc.ID] = append(fares[rc.ID], models.SegmentFare{
				Origin:      fc.Origin,
				Destination: fc.Destination,
				Price:       fc.Price,
			})
		}
	}

	catalogs, err := booking.NewCatalogSet(routes, fares)
	if err != nil {
		return nil, nil, err
	}

	routeIDs := map[string]bool{}
	for _, route := range routes {
		routeIDs[route.ID] = true
	}
	trips := make([]models.TripInstance, 0, len(file.Trips))
	for _, tc := range file.Trips {
		if !routeIDs[tc.Route] {
			return nil, nil, domain.ConfigurationError{Msg: "trip " + tc.ID + " memakai route tidak dikenal " + tc.Route}
		}
		status := models.TripStatus(tc.Status)
		if tc.Status == "" {
			status = models.TripScheduled
		}
		if !status.Valid() {
			return nil, nil, domain.ConfigurationError{Msg: "trip " + tc.ID + " memakai status tidak dikenal " + tc.Status}
		}
		trips = append(trips, models.TripInstance{
			ID:         tc.ID,
			RouteID:    tc.Route,
			VesselName: tc.Vessel,
			Capacity:   tc.Capacity,
			Status:     status,
			TripDate:   tc.Date,
			TripTime:   tc.Time,
		})
	}
	return catalogs, trips, nil
}
