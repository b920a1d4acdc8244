package handlers

import (
	"net/http"
	"time"

	"ferry-backend/internal/booking"
	"ferry-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// HoldRequestBody is the checkout payload that opens a hold.
type HoldRequestBody struct {
	Origin         int    `json:"origin"`
	Destination    int    `json:"destination"`
	SeatCount      int    `json:"seatCount"`
	HoldTTLSeconds int    `json:"holdTtlSeconds"`
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
}

// CreateHold reserves seats on a segment of the trip in the path.
func (a *API) CreateHold(c *gin.Context) {
	var body HoldRequestBody
	if !BindJSONOrError(c, &body) {
		return
	}

	res, err := a.Manager.Hold(booking.HoldRequest{
		TripID:         c.Param("id"),
		Origin:         body.Origin,
		Destination:    body.Destination,
		SeatCount:      body.SeatCount,
		HoldTTL:        time.Duration(body.HoldTTLSeconds) * time.Second,
		PassengerName:  body.PassengerName,
		PassengerPhone: body.PassengerPhone,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reservation": res})
}

// GetReservation returns one reservation row.
func (a *API) GetReservation(c *gin.Context) {
	res, err := a.Manager.GetReservation(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// ConfirmReservation is invoked by the payment collaborator on success.
func (a *API) ConfirmReservation(c *gin.Context) {
	res, err := a.Manager.Confirm(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// ReleaseReservation is invoked on payment abandonment or failure.
func (a *API) ReleaseReservation(c *gin.Context) {
	res, err := a.Manager.Release(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// GetReservationETicket streams the e-ticket PDF of a confirmed reservation.
func (a *API) GetReservationETicket(c *gin.Context) {
	svc := services.TicketService{
		Manager:   a.Manager,
		Trips:     a.Trips,
		Catalogs:  a.Catalogs,
		RequestID: c.GetString("request_id"),
	}
	data, filename, err := svc.GenerateETicket(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
