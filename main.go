package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"pms-backend/config"
	"pms-backend/controllers"
	"pms-backend/jobs"
	"pms-backend/routes"
	"pms-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot issue session tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied.")

	if err := config.ConnectRedis(); err != nil {
		log.Printf("warning: redis unavailable, report caching disabled: %v", err)
	}

	// Services
	folioService := services.NewFolioService(db)
	housekeepingService := services.NewHousekeepingService(db)
	reservationService := services.NewReservationService(db, folioService, housekeepingService)
	posService := services.NewPosService(db, folioService)
	staffService := services.NewStaffService(db)
	reportService := services.NewReportService(db, config.RDB)

	// Controllers
	folioController := controllers.NewFolioController(folioService)
	reservationController := controllers.NewReservationController(reservationService)
	housekeepingController := controllers.NewHousekeepingController(housekeepingService)
	posController := controllers.NewPosController(posService)
	staffController := controllers.NewStaffController(staffService)
	reportController := controllers.NewReportController(reportService)

	router := routes.SetupRouter(
		folioController,
		reservationController,
		housekeepingController,
		posController,
		staffController,
		reportController,
	)

	scheduler := cron.New()
	if err := jobs.InitCronJobs(scheduler, db, reportService); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
