package api

import (
	"log"
	stdhttp "net/http"

	"ferry-backend/internal/booking"
	intconfig "ferry-backend/internal/config"
	h "ferry-backend/internal/http/handlers"
	"ferry-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, manager *booking.ReservationManager, tripStore booking.TripStore, catalogs *booking.CatalogSet) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	a := h.NewAPI(manager, tripStore, catalogs)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		trips := api.Group("/trips")
		trips.GET("", a.GetTrips)
		trips.GET("/:id", a.GetTripByID)
		trips.GET("/:id/segments", a.GetTripSegments)
		trips.POST("/:id/holds", a.CreateHold)

		reservations := api.Group("/reservations")
		reservations.GET("/:id", a.GetReservation)
		reservations.POST("/:id/confirm", a.ConfirmReservation)
		reservations.POST("/:id/release", a.ReleaseReservation)
		reservations.GET("/:id/e-ticket", a.GetReservationETicket)

		admin := api.Group("/admin")
		admin.Use(middleware.OperatorAuth(env.OperatorToken))
		admin.POST("/trips", a.CreateTrip)
		admin.PUT("/trips/:id/capacity", a.UpdateTripCapacity)
		admin.PUT("/trips/:id/status", a.UpdateTripStatus)
		admin.POST("/sweep", a.TriggerSweep)
		admin.POST("/reservations/:id/cancel", a.CancelConfirmed)
	}

	return r
}
