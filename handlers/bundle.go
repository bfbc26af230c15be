package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking page
	PageHandler       gin.HandlerFunc
	SubmitFormHandler gin.HandlerFunc
	DeleteFormHandler gin.HandlerFunc

	// JSON API
	ListGroupedHandler gin.HandlerFunc
	CreateHandler      gin.HandlerFunc
	DeleteHandler      gin.HandlerFunc
	UpdateFormHandler  gin.HandlerFunc
	RefreshHandler     gin.HandlerFunc
	ServicesHandler    gin.HandlerFunc

	// Operations
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle wires an AppointmentHandler into a bundle.
func NewHandlerBundle(ah *AppointmentHandler, metrics gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		PageHandler:       ah.PageHandler,
		SubmitFormHandler: ah.SubmitFormHandler,
		DeleteFormHandler: ah.DeleteFormHandler,

		ListGroupedHandler: ah.ListGroupedHandler,
		CreateHandler:      ah.CreateHandler,
		DeleteHandler:      ah.DeleteHandler,
		UpdateFormHandler:  ah.UpdateFormHandler,
		RefreshHandler:     ah.RefreshHandler,
		ServicesHandler:    ah.ServicesHandler,

		HealthHandler:  HealthHandler,
		MetricsHandler: metrics,
	}
}
