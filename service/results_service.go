package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"campus-voting-backend/cache"
	"campus-voting-backend/database"
	"campus-voting-backend/models"

	"gorm.io/gorm"
)

// CandidateResult is one row of an election's ranked tally.
type CandidateResult struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Votes      int64  `json:"votes"`
	Percentage string `json:"percentage"`
}

// ElectionResults is the full tally for one election.
type ElectionResults struct {
	TotalVotes int64             `json:"totalVotes"`
	Results    []CandidateResult `json:"results"`
}

// ComputeResults returns candidates ranked by vote count with one-decimal
// percentage strings. The total comes from an independent count of vote
// rows, not the sum of candidate tallies, so a drifted counter shows up
// in the output instead of hiding. Payloads are cached in Redis and
// invalidated on every vote write.
func ComputeResults(electionID uint) (*ElectionResults, error) {
	if cached, ok := cache.GetResults(electionID); ok {
		var results ElectionResults
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			return &results, nil
		}
		// Unreadable cache entry; fall through to the database.
		cache.InvalidateResults(electionID)
	}

	var election models.Election
	if err := database.DB.First(&election, electionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("election")
		}
		return nil, upstream("get election", err)
	}

	var candidates []models.Candidate
	err := database.DB.Where("election_id = ?", electionID).
		Order("votes desc, id asc").Find(&candidates).Error
	if err != nil {
		return nil, upstream("list candidates", err)
	}

	totalVotes, err := voteCountForElection(database.DB, electionID)
	if err != nil {
		return nil, upstream("count votes", err)
	}

	results := ElectionResults{
		TotalVotes: totalVotes,
		Results:    make([]CandidateResult, len(candidates)),
	}
	for i, c := range candidates {
		percentage := "0.0"
		if totalVotes > 0 {
			percentage = fmt.Sprintf("%.1f", float64(c.Votes)/float64(totalVotes)*100)
		}
		results.Results[i] = CandidateResult{
			ID:         c.ID,
			Name:       c.Name,
			Position:   c.Position,
			Department: c.Department,
			Votes:      c.Votes,
			Percentage: percentage,
		}
	}

	if payload, err := json.Marshal(&results); err == nil {
		cache.SetResults(electionID, string(payload))
	} else {
		log.Printf("failed to marshal results for caching: %v", err)
	}

	return &results, nil
}
