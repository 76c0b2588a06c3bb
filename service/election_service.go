package service

import (
	"errors"
	"time"

	"campus-voting-backend/cache"
	"campus-voting-backend/database"
	"campus-voting-backend/models"

	"gorm.io/gorm"
)

// ElectionInput carries the fields for creating an election.
type ElectionInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	CreatedBy   string
}

// ElectionPatch carries the fields of an update request. Pointers
// distinguish "absent" from "zero": while an election is ongoing only
// EndTime is honored and the rest are silently ignored.
type ElectionPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// CreateElection validates the input and stores a new election.
func CreateElection(in ElectionInput) (*models.Election, error) {
	if in.Title == "" || in.Description == "" || in.CreatedBy == "" ||
		in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, validationf("all fields are required")
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, validationf("end date must be after start date")
	}

	election := models.Election{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		CreatedBy:   in.CreatedBy,
	}
	if err := database.DB.Create(&election).Error; err != nil {
		return nil, upstream("create election", err)
	}
	return election.WithStatus(time.Now()), nil
}

// ListElections returns all elections, newest first, with live status.
func ListElections() ([]models.Election, error) {
	var elections []models.Election
	if err := database.DB.Order("created_at desc").Find(&elections).Error; err != nil {
		return nil, upstream("list elections", err)
	}
	now := time.Now()
	for i := range elections {
		elections[i].WithStatus(now)
	}
	return elections, nil
}

// GetElection returns one election with live status.
func GetElection(id uint) (*models.Election, error) {
	var election models.Election
	if err := database.DB.First(&election, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("election")
		}
		return nil, upstream("get election", err)
	}
	return election.WithStatus(time.Now()), nil
}

// UpdateElection applies a patch under the lifecycle rules: an ongoing
// election can only have its end time extended; an upcoming or ended
// one takes a full edit, but never once votes exist.
func UpdateElection(id uint, patch ElectionPatch) (*models.Election, error) {
	var election models.Election
	now := time.Now()

	// The vote-count check and the write commit together; a ballot
	// landing between them must not slip an edit through.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&election, id).Error; err != nil {
			return err
		}

		if election.LiveStatus(now) == models.StatusOngoing {
			if patch.EndTime == nil {
				return validationf("end date is required when updating an ongoing election")
			}
			if !patch.EndTime.After(now) {
				return validationf("end date must be in the future")
			}
			// Other patch fields are ignored on purpose: mid-election the
			// only legal change is extending the window.
			election.EndTime = *patch.EndTime
		} else {
			if patch.Title == nil || patch.Description == nil || patch.StartTime == nil || patch.EndTime == nil ||
				*patch.Title == "" || *patch.Description == "" {
				return validationf("title, description, start date, and end date are required")
			}

			votes, err := voteCountForElection(tx, id)
			if err != nil {
				return err
			}
			if votes > 0 {
				return conflict("cannot edit election that already has votes")
			}

			if !patch.EndTime.After(*patch.StartTime) {
				return validationf("end date must be after start date")
			}

			election.Title = *patch.Title
			election.Description = *patch.Description
			election.StartTime = *patch.StartTime
			election.EndTime = *patch.EndTime
		}

		return tx.Save(&election).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("election")
		}
		if IsValidation(err) || IsConflict(err) {
			return nil, err
		}
		return nil, upstream("update election", err)
	}

	cache.InvalidateResults(id)
	return election.WithStatus(now), nil
}

// ValidateStatusOverride checks the advisory status value. Status is
// always derived from the election window, so the override endpoint
// validates and acknowledges without writing anything.
func ValidateStatusOverride(status string) error {
	if !models.ValidElectionStatus(status) {
		return validationf("invalid status")
	}
	return nil
}

// DeleteElection removes an election and its candidates. Blocked as soon
// as a single vote references the election.
func DeleteElection(id uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Checked inside the transaction so a ballot landing after the
		// count cannot leave its election deleted underneath it.
		votes, err := voteCountForElection(tx, id)
		if err != nil {
			return err
		}
		if votes > 0 {
			return conflict("cannot delete election that has votes")
		}

		if err := tx.Where("election_id = ?", id).Delete(&models.Candidate{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Election{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("election")
		}
		if IsConflict(err) {
			return err
		}
		return upstream("delete election", err)
	}

	cache.InvalidateResults(id)
	return nil
}

func voteCountForElection(db *gorm.DB, electionID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Vote{}).Where("election_id = ?", electionID).Count(&count).Error
	return count, err
}
