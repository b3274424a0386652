package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	availabilityRepo "petclinic/database/repository/availability"
	"petclinic/models"
	"petclinic/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves availability-template management endpoints.
type AvailabilityHandler struct {
	Templates availabilityRepo.TemplateRepository
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(templates availabilityRepo.TemplateRepository) *AvailabilityHandler {
	return &AvailabilityHandler{Templates: templates}
}

type templateRequest struct {
	ID                 string                       `json:"id"`
	VeterinarianID     string                       `json:"veterinarianId" binding:"required"`
	ClinicID           string                       `json:"clinicId"`
	DayOfWeek          int                          `json:"dayOfWeek"` // 0 = Sunday
	StartTime          string                       `json:"startTime" binding:"required"`
	EndTime            string                       `json:"endTime" binding:"required"`
	SlotDuration       int                          `json:"slotDuration"`
	AcceptedCategories []models.AppointmentCategory `json:"acceptedCategories" binding:"required"`
	EffectiveFrom      string                       `json:"effectiveFrom"`           // "2006-01-02", defaults to today
	EffectiveUntil     string                       `json:"effectiveUntil"`          // optional
}

// UpsertTemplateHandler creates or edits a recurring weekly template. Times
// arrive as "HH:MM" strings and are parsed here, once, at the boundary.
func (h *AvailabilityHandler) UpsertTemplateHandler(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "dayOfWeek must be 0 (Sunday) through 6 (Saturday)")
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
	if start >= end {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "startTime must be before endTime")
		return
	}
	if len(req.AcceptedCategories) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "acceptedCategories must not be empty")
		return
	}
	for _, cat := range req.AcceptedCategories {
		if !models.ValidCategory(cat) {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown appointment category "+string(cat))
			return
		}
	}

	effectiveFrom := time.Now()
	if req.EffectiveFrom != "" {
		effectiveFrom, err = time.Parse("2006-01-02", req.EffectiveFrom)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "effectiveFrom must be YYYY-MM-DD")
			return
		}
	}
	var effectiveUntil *time.Time
	if req.EffectiveUntil != "" {
		until, err := time.Parse("2006-01-02", req.EffectiveUntil)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "effectiveUntil must be YYYY-MM-DD")
			return
		}
		effectiveUntil = &until
	}

	duration := req.SlotDuration
	if duration <= 0 {
		duration = models.DefaultSlotDurationMinutes
	}

	template := &models.AvailabilityTemplate{
		ID:                 req.ID,
		VeterinarianID:     req.VeterinarianID,
		ClinicID:           req.ClinicID,
		DayOfWeek:          time.Weekday(req.DayOfWeek),
		Start:              start,
		End:                end,
		SlotDuration:       duration,
		AcceptedCategories: req.AcceptedCategories,
		IsActive:           true,
		EffectiveFrom:      effectiveFrom,
		EffectiveUntil:     effectiveUntil,
	}
	if err := h.Templates.Upsert(c.Request.Context(), template); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save template", err.Error())
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeactivateTemplateHandler soft-deletes a template; history for already
// booked appointments stays intact.
func (h *AvailabilityHandler) DeactivateTemplateHandler(c *gin.Context) {
	templateID := c.Param("id")
	if err := h.Templates.Deactivate(c.Request.Context(), templateID); err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "availability template "+templateID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to deactivate template", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": templateID, "isActive": false})
}

// ListTemplatesHandler returns a veterinarian's templates, optionally
// narrowed to one weekday's active set.
func (h *AvailabilityHandler) ListTemplatesHandler(c *gin.Context) {
	veterinarianID := c.Query("vetId")
	if veterinarianID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "vetId query parameter is required")
		return
	}

	if dayStr := c.Query("dayOfWeek"); dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 0 || day > 6 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "dayOfWeek must be 0 through 6")
			return
		}
		templates, err := h.Templates.ActiveForDay(c.Request.Context(), veterinarianID, time.Weekday(day), time.Now())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to fetch templates", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"templates": templates})
		return
	}

	templates, err := h.Templates.ForVeterinarian(c.Request.Context(), veterinarianID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch templates", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}
