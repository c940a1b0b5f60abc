package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/logger"
	"github.com/pdv-restaurante/pdv-api/services"
)

// errorJSON writes the standard error envelope
func errorJSON(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// validationError reports a request body that failed binding
func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// statusFor maps a service error kind to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrBadRequest), errors.Is(err, services.ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError turns a service failure into the error envelope.
// Anything that is not a ServiceError is logged and hidden behind DATABASE_ERROR.
func respondError(c *gin.Context, err error, fallback string) {
	var se *services.ServiceError
	if errors.As(err, &se) {
		errorJSON(c, statusFor(se), se.Code, se.Message)
		return
	}

	logUnexpected(c, fallback, err)
	errorJSON(c, http.StatusInternalServerError, "DATABASE_ERROR", fallback)
}

// logUnexpected records an error the client only sees as a 500
func logUnexpected(c *gin.Context, msg string, err error) {
	logger.Error(c, msg, err)
	_ = c.Error(err)
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
