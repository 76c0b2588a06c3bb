package service

import (
	"testing"
	"time"

	"campus-voting-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestUpdateElectionConflictWhenVotesExist(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	election := models.Election{
		Title:       "Hostel Committee",
		Description: "Hostel committee election",
		StartTime:   now.Add(-48 * time.Hour),
		EndTime:     now.Add(-24 * time.Hour),
		CreatedBy:   "admin@nec.edu",
	}
	require.NoError(t, db.Create(&election).Error)
	require.NoError(t, db.Create(&models.Vote{
		ElectionID:  election.ID,
		CandidateID: 1,
		StudentID:   "S1001",
		VotedAt:     now.Add(-30 * time.Hour),
	}).Error)

	_, err := UpdateElection(election.ID, ElectionPatch{
		Title:       strPtr("Rewritten"),
		Description: strPtr("Rewritten"),
		StartTime:   timePtr(now.Add(24 * time.Hour)),
		EndTime:     timePtr(now.Add(48 * time.Hour)),
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestDeleteElectionConflictWhenVotesExist(t *testing.T) {
	db := newTestDB(t)
	election, candidates := seedOngoingElection(t, db, "Alice")

	_, err := SubmitVote(election.ID, candidates[0].ID, "S1001")
	require.NoError(t, err)

	err = DeleteElection(election.ID)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	var count int64
	db.Model(&models.Election{}).Where("id = ?", election.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteElectionNotFound(t *testing.T) {
	newTestDB(t)

	err := DeleteElection(9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateElectionValidationSurvivesRollback(t *testing.T) {
	db := newTestDB(t)
	election, _ := seedOngoingElection(t, db, "Alice")

	_, err := UpdateElection(election.ID, ElectionPatch{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = UpdateElection(election.ID, ElectionPatch{
		EndTime: timePtr(time.Now().Add(-time.Hour)),
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
