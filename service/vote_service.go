package service

import (
	"errors"
	"time"

	"campus-voting-backend/cache"
	"campus-voting-backend/database"
	"campus-voting-backend/models"

	"gorm.io/gorm"
)

// VoteStatus is the answer to "has this student voted in this election".
// Not having voted is a normal result, never an error.
type VoteStatus struct {
	HasVoted bool       `json:"hasVoted"`
	VotedFor string     `json:"votedFor,omitempty"`
	VotedAt  *time.Time `json:"votedAt,omitempty"`
}

// SubmitVote records one student's ballot in one election.
//
// The duplicate check runs twice: a read upfront for the common case,
// and the composite unique index on votes(election_id, student_id) as
// the authoritative barrier: two concurrent submits for the same pair
// both pass the read, but only one survives the insert. The insert and
// the candidate tally increment commit as one transaction so the count
// can never drift from the surviving vote rows.
func SubmitVote(electionID, candidateID uint, studentID string) (uint, error) {
	if electionID == 0 || candidateID == 0 || studentID == "" {
		return 0, validationf("election ID, candidate ID, and student ID are required")
	}

	var existing int64
	err := database.DB.Model(&models.Vote{}).
		Where("election_id = ? AND student_id = ?", electionID, studentID).
		Count(&existing).Error
	if err != nil {
		return 0, upstream("check existing vote", err)
	}
	if existing > 0 {
		return 0, conflict("you have already voted in this election")
	}

	var election models.Election
	if err := database.DB.First(&election, electionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound("election")
		}
		return 0, upstream("get election", err)
	}

	now := time.Now()
	switch election.LiveStatus(now) {
	case models.StatusUpcoming:
		return 0, validationf("election has not started yet")
	case models.StatusEnded:
		return 0, validationf("election has ended")
	}

	var candidate models.Candidate
	err = database.DB.Where("id = ? AND election_id = ?", candidateID, electionID).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound("candidate for this election")
		}
		return 0, upstream("get candidate", err)
	}

	vote := models.Vote{
		ElectionID:  electionID,
		CandidateID: candidateID,
		StudentID:   studentID,
		VotedAt:     now,
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Candidate{}).
			Where("id = ? AND election_id = ?", candidateID, electionID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Candidate deleted between the check and the insert; roll
			// the vote back rather than leave the tally inconsistent.
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, conflict("you have already voted in this election")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound("candidate for this election")
		}
		return 0, upstream("record vote", err)
	}

	cache.InvalidateResults(electionID)
	return vote.ID, nil
}

// GetVoteStatus reports whether the student has voted in the election,
// and for whom. A missing candidate (deleted after the vote) reports
// the name as Unknown rather than failing.
func GetVoteStatus(electionID uint, studentID string) (*VoteStatus, error) {
	var vote models.Vote
	err := database.DB.Where("election_id = ? AND student_id = ?", electionID, studentID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VoteStatus{HasVoted: false}, nil
		}
		return nil, upstream("get vote", err)
	}

	votedFor := "Unknown"
	var candidate models.Candidate
	if err := database.DB.First(&candidate, vote.CandidateID).Error; err == nil {
		votedFor = candidate.Name
	}

	votedAt := vote.VotedAt
	return &VoteStatus{HasVoted: true, VotedFor: votedFor, VotedAt: &votedAt}, nil
}

// ReverseVote deletes a vote record and symmetrically decrements the
// candidate tally, in one transaction. The decrement is clamped at zero
// and skipped when the candidate no longer exists (orphaned votes are
// tolerated). Reversing the same vote id twice yields a NotFoundError
// on the second call because the row is already gone.
func ReverseVote(voteID uint) error {
	var vote models.Vote

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vote, voteID).Error; err != nil {
			return err
		}

		// Claim the row before touching the tally. Two concurrent
		// reversals can both read the vote, but only one delete removes
		// the row; the loser sees zero rows affected and must roll back
		// without decrementing. The hard delete also frees the
		// (election_id, student_id) pair for a fresh vote.
		result := tx.Delete(&models.Vote{}, voteID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Candidate{}).
			Where("id = ? AND votes > 0", vote.CandidateID).
			UpdateColumn("votes", gorm.Expr("votes - ?", 1)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("vote")
		}
		return upstream("reverse vote", err)
	}

	cache.InvalidateResults(vote.ElectionID)
	return nil
}

// ListVotesForStudent returns every vote the student has cast, across
// all elections.
func ListVotesForStudent(studentID string) ([]models.Vote, error) {
	if studentID == "" {
		return nil, validationf("student ID is required")
	}
	var votes []models.Vote
	err := database.DB.Where("student_id = ?", studentID).Find(&votes).Error
	if err != nil {
		return nil, upstream("list votes", err)
	}
	return votes, nil
}
