package handlers

import (
	"errors"
	"net/http"

	"petclinic/services/scheduling"
	"petclinic/utils"

	"github.com/gin-gonic/gin"
)

// respondSchedulingError maps the engine's error taxonomy onto HTTP statuses.
// Conflicts are expected under concurrent load: the client should re-fetch
// slots and retry with a different one, so they are not logged as failures.
func respondSchedulingError(c *gin.Context, err error) {
	var (
		validationErr   *scheduling.ValidationError
		conflictErr     *scheduling.ConflictError
		invalidStateErr *scheduling.InvalidStateError
		notFoundErr     *scheduling.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", validationErr.Message)
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "not found", notFoundErr.Message)
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: "slot conflict", Details: conflictErr.Message})
	case errors.As(err, &invalidStateErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid state transition", invalidStateErr.Message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
