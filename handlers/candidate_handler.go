package handlers

import (
	"net/http"

	"campus-voting-backend/service"

	"github.com/gin-gonic/gin"
)

// CreateCandidateInput defines the expected input for registering a candidate.
type CreateCandidateInput struct {
	Name       string `json:"name" binding:"required"`
	Position   string `json:"position" binding:"required"`
	ElectionID uint   `json:"electionId" binding:"required"`
	Department string `json:"department" binding:"required"`
	PhotoURL   string `json:"photoUrl"`
}

// CreateCandidate handles POST /api/admin/candidates.
func CreateCandidate(c *gin.Context) {
	var input CreateCandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, position, election, and department are required"})
		return
	}

	candidate, err := service.CreateCandidate(service.CandidateInput{
		Name:       input.Name,
		Position:   input.Position,
		ElectionID: input.ElectionID,
		Department: input.Department,
		PhotoURL:   input.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Candidate created successfully",
		"candidate": candidate,
	})
}

// GetCandidates handles GET /api/candidates.
func GetCandidates(c *gin.Context) {
	candidates, err := service.ListCandidates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// GetCandidatesByElection handles GET /api/candidates/election/:id.
func GetCandidatesByElection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	candidates, err := service.ListCandidatesByElection(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// DeleteCandidate handles DELETE /api/admin/candidates/:id.
func DeleteCandidate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := service.DeleteCandidate(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted successfully"})
}
