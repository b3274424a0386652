// File: petclinic/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petclinic/config"
	"petclinic/database"
	appointmentRepo "petclinic/database/repository/appointment"
	availabilityRepo "petclinic/database/repository/availability"
	blockedRepo "petclinic/database/repository/blocked"
	"petclinic/handlers"
	"petclinic/middleware"
	"petclinic/routes"
	"petclinic/services/scheduling"
	"petclinic/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()
	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), utils.GetLockClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	templateRepo := availabilityRepo.NewMongoTemplateRepo()
	blockRepo := blockedRepo.NewMongoBlockedRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// scheduling engine, with its collaborators injected explicitly.
	engine := scheduling.NewSchedulingEngine(templateRepo, blockRepo, apptRepo, scheduling.RedisCommitLocker{})

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(templateRepo),
		Blocked:      handlers.NewBlockedHandler(blockRepo),
		Appointments: handlers.NewAppointmentHandler(engine),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
