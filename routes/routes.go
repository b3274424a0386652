package routes

import (
	"net/http"
	"time"

	"petclinic/handlers"
	"petclinic/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers template and blocked-interval
// management endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.POST("/templates", hb.Availability.UpsertTemplateHandler)
		api.GET("/templates", hb.Availability.ListTemplatesHandler)
		api.DELETE("/templates/:id", hb.Availability.DeactivateTemplateHandler)

		api.POST("/blocked", hb.Blocked.AddBlockedIntervalHandler)
		api.GET("/blocked", hb.Blocked.ListBlockedIntervalsHandler)
		api.DELETE("/blocked/:id", hb.Blocked.RemoveBlockedIntervalHandler)
	}
}

// RegisterSchedulingRoutes registers slot queries and the appointment
// lifecycle endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.GET("/veterinarians/:id/slots", hb.Appointments.GetAvailableSlotsHandler)
	}

	appointments := r.Group("/api/appointments")
	{
		appointments.POST("", hb.Appointments.CreateAppointmentHandler)
		appointments.GET("", hb.Appointments.ListAppointmentsHandler)
		appointments.GET("/:id", hb.Appointments.GetAppointmentHandler)
		appointments.POST("/:id/confirm", hb.Appointments.ConfirmHandler)
		appointments.POST("/:id/start", hb.Appointments.StartHandler)
		appointments.POST("/:id/complete", hb.Appointments.CompleteHandler)
		appointments.POST("/:id/cancel", hb.Appointments.CancelHandler)
		appointments.POST("/:id/no-show", hb.Appointments.NoShowHandler)
		appointments.POST("/:id/reschedule", hb.Appointments.RescheduleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
}
