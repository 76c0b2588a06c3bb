package handlers

import (
	"net/http"
	"time"

	"campus-voting-backend/service"

	"github.com/gin-gonic/gin"
)

// CreateElectionInput defines the expected input for creating an election.
type CreateElectionInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	CreatedBy   string    `json:"createdBy" binding:"required"`
}

// UpdateElectionInput uses pointers so the handler can tell which fields
// the client actually sent; the lifecycle rules in the service decide
// which of them are honored.
type UpdateElectionInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// CreateElection handles POST /api/admin/elections.
func CreateElection(c *gin.Context) {
	var input CreateElectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	election, err := service.CreateElection(service.ElectionInput{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartDate,
		EndTime:     input.EndDate,
		CreatedBy:   input.CreatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Election created successfully",
		"election": election,
	})
}

// GetElections handles GET /api/elections.
func GetElections(c *gin.Context) {
	elections, err := service.ListElections()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, elections)
}

// GetElection handles GET /api/elections/:id.
func GetElection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	election, err := service.GetElection(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, election)
}

// UpdateElection handles PUT /api/admin/elections/:id.
func UpdateElection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdateElectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		return
	}

	election, err := service.UpdateElection(id, service.ElectionPatch{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartDate,
		EndTime:     input.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Election updated successfully",
		"election": election,
	})
}

// UpdateElectionStatusInput carries the advisory status value.
type UpdateElectionStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateElectionStatus handles PUT /api/admin/elections/:id/status.
// Status is derived from the election window on every read, so this
// endpoint validates the value and acknowledges without storing it; a
// stored override could never correct the live computation.
func UpdateElectionStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdateElectionStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}
	if err := service.ValidateStatusOverride(input.Status); err != nil {
		respondError(c, err)
		return
	}

	election, err := service.GetElection(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Election status is derived from its schedule",
		"election": election,
	})
}

// DeleteElection handles DELETE /api/admin/elections/:id.
func DeleteElection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := service.DeleteElection(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Election deleted successfully"})
}
