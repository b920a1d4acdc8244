package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ferry-backend/internal/booking"
	intconfig "ferry-backend/internal/config"
	router "ferry-backend/internal/http"
	"ferry-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	catalogs, seedTrips, err := intconfig.LoadCatalog(env.CatalogPath)
	if err != nil {
		log.Fatalf("Gagal memuat katalog: %v", err)
	}

	var (
		store booking.ReservationStore
		trips booking.TripStore
	)
	if env.DBDSN != "" {
		db := intconfig.ConnectDB(env.DBDSN)
		defer intconfig.CloseDB()
		if err := repositories.EnsureSchema(db); err != nil {
			log.Fatalf("Gagal menyiapkan skema: %v", err)
		}
		tripRepo := repositories.TripRepo{DB: db}
		if err := tripRepo.SeedTrips(seedTrips); err != nil {
			log.Fatalf("Gagal seed trips: %v", err)
		}
		store = repositories.ReservationRepo{DB: db}
		trips = tripRepo
	} else {
		log.Println("DB_DSN kosong, memakai penyimpanan memory")
		mem := booking.NewMemStore()
		for _, trip := range seedTrips {
			if err := mem.CreateTrip(trip); err != nil {
				log.Fatalf("Gagal seed trips: %v", err)
			}
		}
		store = mem
		trips = mem
	}

	manager := booking.NewReservationManager(booking.ManagerConfig{
		Store:    store,
		Trips:    trips,
		Catalogs: catalogs,
		HoldTTL:  env.HoldTTL,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	sweeper := &booking.Sweeper{Manager: manager, Interval: env.SweepInterval}
	go sweeper.Run(ctx)

	r := router.NewRouter(env, manager, trips, catalogs)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
