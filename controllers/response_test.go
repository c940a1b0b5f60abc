package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/services"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(&services.ServiceError{Kind: services.ErrNotFound}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&services.ServiceError{Kind: services.ErrBadRequest}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&services.ServiceError{Kind: services.ErrConflict}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk full")))
}

func TestRespondErrorHidesUnexpectedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("database is locked"), "Failed to create order")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DATABASE_ERROR", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "locked")
	assert.Len(t, c.Errors, 1)
}
