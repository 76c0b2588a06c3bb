package handlers

import (
	"log"
	"net/http"
	"strconv"

	"campus-voting-backend/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service failures to the stable HTTP contract:
// validation and conflict are 400, missing entities are 404, everything
// else is a 500 with a generic message. Internal errors are logged but
// never echoed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err), service.IsConflict(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// parseID parses a numeric path parameter; a non-numeric value reports
// 400 and returns false.
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + param + " format"})
		return 0, false
	}
	return uint(id), true
}
