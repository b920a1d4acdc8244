package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTrips lists trip instances.
func (a *API) GetTrips(c *gin.Context) {
	trips, err := a.Trips.ListTrips()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GetTripByID returns one trip with its route stops.
func (a *API) GetTripByID(c *gin.Context) {
	trip, err := a.Trips.GetTrip(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	catalog, err := a.Catalogs.ForRoute(trip.RouteID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip, "route": catalog.Route()})
}

// GetTripSegments lists bookable segments with live availability.
// ?minSeats=N filters out segments with fewer free seats.
func (a *API) GetTripSegments(c *gin.Context) {
	minSeats := 0
	if raw := strings.TrimSpace(c.Query("minSeats")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "minSeats tidak valid", err)
			return
		}
		minSeats = n
	}

	segments, err := a.Manager.ListSegments(c.Param("id"), minSeats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": segments})
}
