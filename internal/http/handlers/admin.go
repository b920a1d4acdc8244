package handlers

import (
	"net/http"

	"ferry-backend/internal/domain/models"
	"ferry-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateTripRequest is the operator payload for scheduling a sailing.
type CreateTripRequest struct {
	ID       string `json:"id"`
	RouteID  string `json:"routeId"`
	Vessel   string `json:"vessel"`
	Capacity int    `json:"capacity"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// CreateTrip schedules a new trip instance on a configured route.
func (a *API) CreateTrip(c *gin.Context) {
	var body CreateTripRequest
	if !BindJSONOrError(c, &body) {
		return
	}
	if body.ID == "" || body.RouteID == "" {
		RespondError(c, http.StatusBadRequest, "id dan routeId wajib", nil)
		return
	}
	if _, err := a.Catalogs.ForRoute(body.RouteID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if body.Date != "" {
		if _, err := utils.ParseDate(body.Date); err != nil {
			RespondError(c, http.StatusBadRequest, "format date harus YYYY-MM-DD", err)
			return
		}
	}
	if body.Time != "" {
		if _, err := utils.ParseClock(body.Time); err != nil {
			RespondError(c, http.StatusBadRequest, "format time harus HH:MM", err)
			return
		}
	}

	trip := models.TripInstance{
		ID:         body.ID,
		RouteID:    body.RouteID,
		VesselName: body.Vessel,
		Capacity:   body.Capacity,
		Status:     models.TripScheduled,
		TripDate:   body.Date,
		TripTime:   body.Time,
	}
	if err := a.Trips.CreateTrip(trip); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// UpdateTripCapacityRequest changes capacity before any booking exists.
type UpdateTripCapacityRequest struct {
	Capacity int `json:"capacity"`
}

func (a *API) UpdateTripCapacity(c *gin.Context) {
	var body UpdateTripCapacityRequest
	if !BindJSONOrError(c, &body) {
		return
	}
	if err := a.Trips.UpdateTripCapacity(c.Param("id"), body.Capacity); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kapasitas diperbarui"})
}

// UpdateTripStatusRequest moves a trip to cancelled or departed.
type UpdateTripStatusRequest struct {
	Status string `json:"status"`
}

func (a *API) UpdateTripStatus(c *gin.Context) {
	var body UpdateTripStatusRequest
	if !BindJSONOrError(c, &body) {
		return
	}
	if err := a.Trips.UpdateTripStatus(c.Param("id"), models.TripStatus(body.Status)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status diperbarui"})
}

// TriggerSweep runs one expiry sweep now. The scheduler normally does this;
// the endpoint exists for ops intervention.
func (a *API) TriggerSweep(c *gin.Context) {
	expired, err := a.Manager.ExpireSweep(utils.NowUTC())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

// CancelConfirmed releases the seats of a confirmed booking. Refund handling
// stays with the payment collaborator.
func (a *API) CancelConfirmed(c *gin.Context) {
	res, err := a.Manager.CancelConfirmed(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}
