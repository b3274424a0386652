package handlers

import (
	"errors"
	"net/http"
	"time"

	blockedRepo "petclinic/database/repository/blocked"
	"petclinic/models"
	"petclinic/utils"

	"github.com/gin-gonic/gin"
)

// BlockedHandler serves blocked-interval management endpoints.
type BlockedHandler struct {
	Blocked blockedRepo.BlockedRepository
}

// NewBlockedHandler constructs a BlockedHandler.
func NewBlockedHandler(blocked blockedRepo.BlockedRepository) *BlockedHandler {
	return &BlockedHandler{Blocked: blocked}
}

type blockedRequest struct {
	VeterinarianID   string `json:"veterinarianId" binding:"required"`
	StartDateTime    string `json:"startDateTime" binding:"required"` // RFC 3339
	EndDateTime      string `json:"endDateTime" binding:"required"`
	Reason           string `json:"reason" binding:"required"`
	IsRecurring      bool   `json:"isRecurring"`
	RecurringPattern string `json:"recurringPattern"`
}

// AddBlockedIntervalHandler records an explicit closure of a veterinarian's
// calendar. For recurring closures the submitted interval is the first
// occurrence; later dates are derived by the engine at read time.
func (h *BlockedHandler) AddBlockedIntervalHandler(c *gin.Context) {
	var req blockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartDateTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "startDateTime must be RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDateTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "endDateTime must be RFC 3339")
		return
	}
	if !start.Before(end) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "startDateTime must be before endDateTime")
		return
	}
	pattern := models.RecurrencePattern(req.RecurringPattern)
	if req.IsRecurring && !models.ValidRecurrencePattern(pattern) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "recurringPattern must be one of DAILY, WEEKLY, MONTHLY, YEARLY")
		return
	}

	block := &models.BlockedInterval{
		VeterinarianID: req.VeterinarianID,
		StartDateTime:  start,
		EndDateTime:    end,
		Reason:         req.Reason,
		IsRecurring:    req.IsRecurring,
	}
	if req.IsRecurring {
		block.RecurringPattern = pattern
	}
	if err := h.Blocked.Add(c.Request.Context(), block); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save blocked interval", err.Error())
		return
	}
	c.JSON(http.StatusOK, block)
}

// RemoveBlockedIntervalHandler deletes a blocked interval.
func (h *BlockedHandler) RemoveBlockedIntervalHandler(c *gin.Context) {
	blockID := c.Param("id")
	if err := h.Blocked.Remove(c.Request.Context(), blockID); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "blocked interval "+blockID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove blocked interval", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": blockID, "removed": true})
}

// ListBlockedIntervalsHandler returns a veterinarian's stored blocked
// intervals overlapping the query range (recurring ones included as stored).
func (h *BlockedHandler) ListBlockedIntervalsHandler(c *gin.Context) {
	veterinarianID := c.Query("vetId")
	if veterinarianID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "vetId query parameter is required")
		return
	}
	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().Format("2006-01-02")))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "from must be YYYY-MM-DD")
		return
	}
	to := from.AddDate(0, 0, 7)
	if toStr := c.Query("to"); toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "to must be YYYY-MM-DD")
			return
		}
	}

	blocks, err := h.Blocked.ForVeterinarianInRange(c.Request.Context(), veterinarianID, from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch blocked intervals", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedIntervals": blocks})
}
