package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nataliestudio/models"
	"nataliestudio/services/appointments"
	"nataliestudio/utils"
)

// AppointmentHandler serves the booking page and its JSON API from one view-model.
type AppointmentHandler struct {
	VM appointments.ViewModel
}

func NewAppointmentHandler(vm appointments.ViewModel) *AppointmentHandler {
	return &AppointmentHandler{VM: vm}
}

// PageData feeds templates/index.html.
type PageData struct {
	Form         models.AppointmentInput
	FormComplete bool
	Services     []models.ServiceOption
	Confirmation string
	Error        string
	FilterDate   string
	Days         []models.DayGroup
}

// stateResponse is returned by every JSON mutation so callers can see what
// the view-model ended up with, even when a backend failure was swallowed.
type stateResponse struct {
	Form         models.AppointmentInput `json:"form"`
	FormComplete bool                    `json:"formComplete"`
	Confirmation string                  `json:"confirmation"`
	Appointments []models.Appointment    `json:"appointments"`
}

func (h *AppointmentHandler) state() stateResponse {
	form := h.VM.Form()
	return stateResponse{
		Form:         form,
		FormComplete: form.Complete(),
		Confirmation: h.VM.Confirmation(),
		Appointments: h.VM.Appointments(),
	}
}

// validFilterDate accepts "" or a YYYY-MM-DD date.
func validFilterDate(date string) bool {
	if date == "" {
		return true
	}
	_, err := time.Parse(appointments.DateLayout, date)
	return err == nil
}

func (h *AppointmentHandler) renderPage(c *gin.Context, status int, errMsg string) {
	filter := c.Query("date")
	if !validFilterDate(filter) {
		filter = ""
	}
	form := h.VM.Form()
	c.HTML(status, "index.html", PageData{
		Form:         form,
		FormComplete: form.Complete(),
		Services:     h.VM.Services(),
		Confirmation: h.VM.Confirmation(),
		Error:        errMsg,
		FilterDate:   filter,
		Days:         h.VM.Grouped(filter),
	})
}

// PageHandler renders the booking page.
func (h *AppointmentHandler) PageHandler(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "")
}

// SubmitFormHandler handles the HTML form post.
func (h *AppointmentHandler) SubmitFormHandler(c *gin.Context) {
	logger := getLogger(c)

	var in models.AppointmentInput
	if err := c.ShouldBind(&in); err != nil {
		logger.Warn("Invalid appointment form", zap.Error(err))
		h.renderPage(c, http.StatusBadRequest, "Formular invalid")
		return
	}
	h.VM.SetForm(in)

	if _, err := h.VM.Create(c.Request.Context(), in); err != nil {
		if errors.Is(err, appointments.ErrFormIncomplete) {
			h.renderPage(c, http.StatusUnprocessableEntity, "Completează toate câmpurile")
			return
		}
		h.renderPage(c, http.StatusBadGateway, "Programarea nu a putut fi salvată")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteFormHandler handles the per-row delete button.
func (h *AppointmentHandler) DeleteFormHandler(c *gin.Context) {
	if err := h.VM.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderPage(c, http.StatusBadGateway, "Programarea nu a putut fi ștearsă")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ListGroupedHandler returns the day-grouped view.
func (h *AppointmentHandler) ListGroupedHandler(c *gin.Context) {
	filter := c.Query("date")
	if !validFilterDate(filter) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date filter", "expected YYYY-MM-DD")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loaded":       h.VM.Loaded(),
		"days":         h.VM.Grouped(filter),
		"confirmation": h.VM.Confirmation(),
	})
}

// CreateHandler replaces the form draft with the request body and creates
// exactly that payload.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	logger := getLogger(c)

	var in models.AppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.Warn("Invalid appointment payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	h.VM.SetForm(in)

	created, err := h.VM.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, appointments.ErrFormIncomplete) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Appointment form is incomplete", "name, date, time and service are required")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Failed to save appointment", err.Error())
		return
	}

	status := http.StatusOK
	if created != nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"appointment": created, "state": h.state()})
}

// DeleteHandler deletes one appointment by id.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	if err := h.VM.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, appointments.ErrMissingID) {
			utils.JSONError(c, http.StatusBadRequest, "Missing appointment id", "")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Failed to delete appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.state()})
}

// UpdateFormHandler applies field edits to the draft and reports whether it
// may be submitted.
func (h *AppointmentHandler) UpdateFormHandler(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	for name, value := range fields {
		if err := h.VM.SetField(name, value); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid form field", err.Error())
			return
		}
	}
	form := h.VM.Form()
	c.JSON(http.StatusOK, gin.H{"form": form, "complete": form.Complete()})
}

// RefreshHandler re-fetches the collection from the backend on request.
func (h *AppointmentHandler) RefreshHandler(c *gin.Context) {
	if err := h.VM.Refresh(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to refresh appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": h.VM.Loaded(), "appointments": h.VM.Appointments()})
}

// ServicesHandler lists the service catalogue.
func (h *AppointmentHandler) ServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.VM.Services())
}
