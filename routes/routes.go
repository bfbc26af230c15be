package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nataliestudio/handlers"
)

// RegisterPageRoutes registers the server-rendered booking page.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.PageHandler)
	r.POST("/appointments", hb.SubmitFormHandler)
	r.POST("/appointments/:id/delete", hb.DeleteFormHandler)
}

// RegisterAppointmentRoutes registers the JSON API used by scripted clients.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/appointments", hb.ListGroupedHandler)
		api.POST("/appointments", hb.CreateHandler)
		api.DELETE("/appointments/:id", hb.DeleteHandler)
		api.POST("/appointments/refresh", hb.RefreshHandler)
		api.PUT("/form", hb.UpdateFormHandler)
		api.GET("/services", hb.ServicesHandler)
	}
}

// RegisterHealthRoute registers health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPageRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
