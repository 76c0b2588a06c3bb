package handlers

import (
	"net/http"

	"campus-voting-backend/service"

	"github.com/gin-gonic/gin"
)

// SubmitVoteInput defines the expected input for casting a vote.
type SubmitVoteInput struct {
	ElectionID  uint   `json:"electionId"`
	CandidateID uint   `json:"candidateId"`
	StudentID   string `json:"studentId"`
}

// SubmitVote handles POST /api/vote. Validation and eligibility live in
// the service; the duplicate-vote guarantee comes from the unique index
// underneath it.
func SubmitVote(c *gin.Context) {
	var input SubmitVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Election ID, candidate ID, and student ID are required"})
		return
	}

	voteID, err := service.SubmitVote(input.ElectionID, input.CandidateID, input.StudentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vote submitted successfully",
		"voteId":  voteID,
	})
}

// GetVoteStatus handles GET /api/vote/status/:electionId/:studentId.
func GetVoteStatus(c *gin.Context) {
	electionID, ok := parseID(c, "electionId")
	if !ok {
		return
	}
	studentID := c.Param("studentId")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Student ID is required"})
		return
	}

	status, err := service.GetVoteStatus(electionID, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetStudentVotes handles GET /api/vote/student/:studentId.
func GetStudentVotes(c *gin.Context) {
	studentID := c.Param("studentId")

	votes, err := service.ListVotesForStudent(studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}

// DeleteVote handles DELETE /api/vote/:voteId, the administrative
// reversal of a cast ballot.
func DeleteVote(c *gin.Context) {
	voteID, ok := parseID(c, "voteId")
	if !ok {
		return
	}

	if err := service.ReverseVote(voteID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote deleted successfully"})
}

// GetElectionResults handles GET /api/elections/:id/results.
func GetElectionResults(c *gin.Context) {
	electionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	results, err := service.ComputeResults(electionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
