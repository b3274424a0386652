package handlers

import (
	"net/http"
	"strconv"

	"petclinic/models"
	"petclinic/services/scheduling"
	"petclinic/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves slot queries and appointment lifecycle endpoints.
type AppointmentHandler struct {
	Engine scheduling.SchedulingService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(engine scheduling.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{Engine: engine}
}

// GetAvailableSlotsHandler computes the bookable slots for a veterinarian,
// date and category. An empty list is a normal "no availability" outcome.
func (h *AppointmentHandler) GetAvailableSlotsHandler(c *gin.Context) {
	veterinarianID := c.Param("id")
	date := c.Query("date")
	category := models.AppointmentCategory(c.Query("category"))

	slotDuration := 0
	if durStr := c.Query("duration"); durStr != "" {
		dur, err := strconv.Atoi(durStr)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "duration must be an integer number of minutes")
			return
		}
		slotDuration = dur
	}

	slots, err := h.Engine.GetAvailableSlots(c.Request.Context(), veterinarianID, date, category, slotDuration)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type createAppointmentRequest struct {
	PetID          string `json:"petId" binding:"required"`
	OwnerID        string `json:"ownerId" binding:"required"`
	VeterinarianID string `json:"veterinarianId" binding:"required"`
	ClinicID       string `json:"clinicId"`
	Category       string `json:"category" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime        string `json:"endTime" binding:"required"`
	Urgency        string `json:"urgency"`
	Reason         string `json:"reason" binding:"required"`
	Notes          string `json:"notes"`
}

// CreateAppointmentHandler books a slot. The engine re-validates non-overlap
// atomically with the insert, so a 409 here means another caller won the
// race and the client should re-query slots.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, err := models.ParseMinuteOfDay(req.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	end, err := models.ParseMinuteOfDay(req.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appointment, err := h.Engine.CreateAppointment(c.Request.Context(), scheduling.CreateAppointmentRequest{
		PetID:          req.PetID,
		OwnerID:        req.OwnerID,
		VeterinarianID: req.VeterinarianID,
		ClinicID:       req.ClinicID,
		Category:       models.AppointmentCategory(req.Category),
		Date:           req.Date,
		Start:          start,
		End:            end,
		Urgency:        models.AppointmentUrgency(req.Urgency),
		Reason:         req.Reason,
		Notes:          req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// GetAppointmentHandler returns one appointment by id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appointment, err := h.Engine.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// ListAppointmentsHandler returns a veterinarian's appointments for one date.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	veterinarianID := c.Query("vetId")
	if veterinarianID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "vetId query parameter is required")
		return
	}
	appointments, err := h.Engine.AppointmentsForDay(c.Request.Context(), veterinarianID, c.Query("date"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// ConfirmHandler transitions SCHEDULED -> CONFIRMED.
func (h *AppointmentHandler) ConfirmHandler(c *gin.Context) {
	appointment, err := h.Engine.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// StartHandler transitions CONFIRMED -> IN_PROGRESS.
func (h *AppointmentHandler) StartHandler(c *gin.Context) {
	appointment, err := h.Engine.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

type completeRequest struct {
	ActualCost *float64 `json:"actualCost"`
}

// CompleteHandler transitions IN_PROGRESS -> COMPLETED.
func (h *AppointmentHandler) CompleteHandler(c *gin.Context) {
	var req completeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}
	appointment, err := h.Engine.Complete(c.Request.Context(), c.Param("id"), req.ActualCost)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

type cancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelHandler transitions SCHEDULED|CONFIRMED -> CANCELLED, freeing the
// interval for the next slot query.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	appointment, err := h.Engine.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// NoShowHandler transitions SCHEDULED|CONFIRMED -> NO_SHOW.
func (h *AppointmentHandler) NoShowHandler(c *gin.Context) {
	appointment, err := h.Engine.MarkNoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

type rescheduleRequest struct {
	NewDate      string `json:"newDate" binding:"required"`
	NewStartTime string `json:"newStartTime" binding:"required"`
	NewEndTime   string `json:"newEndTime" binding:"required"`
}

// RescheduleHandler moves an appointment to a new interval; the response is
// the replacement record.
func (h *AppointmentHandler) RescheduleHandler(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, err := models.ParseMinuteOfDay(req.NewStartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	end, err := models.ParseMinuteOfDay(req.NewEndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appointment, err := h.Engine.Reschedule(c.Request.Context(), c.Param("id"), scheduling.RescheduleRequest{
		NewDate:  req.NewDate,
		NewStart: start,
		NewEnd:   end,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}
