package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/importer"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

// RequestLogger пишет каждый запрос в общий лог
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s -> %d (%s)"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start)}
		switch {
		case status >= http.StatusInternalServerError:
			utils.Log.Errorf(line, args...)
		case status >= http.StatusBadRequest:
			utils.Log.Warnf(line, args...)
		default:
			utils.Log.Infof(line, args...)
		}
	}
}

// statusFor maps the error kinds to HTTP codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation), errors.Is(err, importer.ErrInvalidURL),
		errors.Is(err, importer.ErrBlockedHost):
		return http.StatusBadRequest
	case errors.Is(err, importer.ErrNoRecipe):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrImagesDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, repository.ErrTransientIO):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		utils.Log.Errorf("store error on %s: %v", c.Request.URL.Path, err)
		msg = "storage is unavailable, please try again"
	case http.StatusInternalServerError:
		utils.Log.Errorf("unexpected error on %s: %v", c.Request.URL.Path, err)
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// paramID reads the :id path parameter; on failure it has already responded
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
