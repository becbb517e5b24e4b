package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/service"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.InvalidInputError):
		return http.StatusBadRequest
	case errors.Is(err, data.NotFoundError):
		return http.StatusNotFound
	case errors.Is(err, data.ReferenceNotFoundError):
		return http.StatusUnprocessableEntity
	case errors.Is(err, data.DuplicatedKeyError):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusOf(err), gin.H{"error": err.Error()})
}

func abortWithBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
