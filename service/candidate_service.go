package service

import (
	"errors"

	"campus-voting-backend/cache"
	"campus-voting-backend/database"
	"campus-voting-backend/models"

	"gorm.io/gorm"
)

// CandidateInput carries the fields for registering a candidate.
type CandidateInput struct {
	Name       string
	Position   string
	ElectionID uint
	Department string
	PhotoURL   string
}

// CreateCandidate registers a candidate under an existing election with
// a zero vote count.
func CreateCandidate(in CandidateInput) (*models.Candidate, error) {
	if in.Name == "" || in.Position == "" || in.Department == "" || in.ElectionID == 0 {
		return nil, validationf("name, position, election, and department are required")
	}

	var election models.Election
	if err := database.DB.First(&election, in.ElectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("election")
		}
		return nil, upstream("get election", err)
	}

	candidate := models.Candidate{
		Name:       in.Name,
		Position:   in.Position,
		ElectionID: in.ElectionID,
		Department: in.Department,
		PhotoURL:   in.PhotoURL,
	}
	if err := database.DB.Create(&candidate).Error; err != nil {
		return nil, upstream("create candidate", err)
	}

	// Cached results now miss a candidate row.
	cache.InvalidateResults(in.ElectionID)
	return &candidate, nil
}

// ListCandidates returns all candidates, newest first.
func ListCandidates() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := database.DB.Order("created_at desc").Find(&candidates).Error; err != nil {
		return nil, upstream("list candidates", err)
	}
	return candidates, nil
}

// ListCandidatesByElection returns the candidates of one election,
// newest first.
func ListCandidatesByElection(electionID uint) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := database.DB.Where("election_id = ?", electionID).
		Order("created_at desc").Find(&candidates).Error
	if err != nil {
		return nil, upstream("list candidates", err)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate. Existing votes that reference the
// candidate are left in place; vote-status lookups report the candidate
// name as unknown after this.
func DeleteCandidate(id uint) error {
	var candidate models.Candidate
	if err := database.DB.First(&candidate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("candidate")
		}
		return upstream("get candidate", err)
	}

	if err := database.DB.Delete(&models.Candidate{}, id).Error; err != nil {
		return upstream("delete candidate", err)
	}

	cache.InvalidateResults(candidate.ElectionID)
	return nil
}
