package models

import (
	"time"

	"gorm.io/gorm"
)

// ElectionStatus is the live state of an election derived from its window.
type ElectionStatus string

const (
	StatusUpcoming ElectionStatus = "Upcoming"
	StatusOngoing  ElectionStatus = "Ongoing"
	StatusEnded    ElectionStatus = "Ended"
)

// ValidElectionStatus reports whether s is one of the three enumerated values.
func ValidElectionStatus(s string) bool {
	switch ElectionStatus(s) {
	case StatusUpcoming, StatusOngoing, StatusEnded:
		return true
	}
	return false
}

// Admin represents the administrator account. One is seeded at startup.
type Admin struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:admin" json:"role"`
}

// Student represents a registered voter account.
type Student struct {
	gorm.Model
	FullName     string `gorm:"not null" json:"fullName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	StudentID    string `gorm:"uniqueIndex;not null" json:"studentId"`
	Department   string `gorm:"not null" json:"department"`
	Year         string `gorm:"not null" json:"year"`
	Password     string `gorm:"not null" json:"-"`
	IsRegistered bool   `gorm:"default:true" json:"isRegistered"`
}

// LoginLog records a successful admin or student login.
type LoginLog struct {
	gorm.Model
	Email     string    `gorm:"not null" json:"email"`
	StudentID string    `json:"studentId,omitempty"`
	UserType  string    `gorm:"not null" json:"userType"` // "admin" or "student"
	LoginTime time.Time `json:"loginTime"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
}

// Election represents a voting event. There is deliberately no persisted
// status column: status is always derived from the window via LiveStatus,
// so a stale stored value can never contradict the clock.
type Election struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"startDate"`
	EndTime     time.Time `gorm:"not null" json:"endDate"`
	CreatedBy   string    `gorm:"not null" json:"createdBy"`

	// Computed at read time, never stored.
	Status ElectionStatus `gorm:"-" json:"status"`
}

// LiveStatus derives the election state from its window at the given time.
func (e *Election) LiveStatus(now time.Time) ElectionStatus {
	if now.Before(e.StartTime) {
		return StatusUpcoming
	}
	if now.After(e.EndTime) {
		return StatusEnded
	}
	return StatusOngoing
}

// WithStatus fills the transient Status field for serialization.
func (e *Election) WithStatus(now time.Time) *Election {
	e.Status = e.LiveStatus(now)
	return e
}

// Candidate represents a contestant within a single election. Votes is
// maintained incrementally by the vote ledger and must equal the number
// of surviving Vote rows referencing the candidate.
type Candidate struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	Position   string `gorm:"not null" json:"position"`
	ElectionID uint   `gorm:"not null;index" json:"electionId"`
	Department string `gorm:"not null" json:"department"`
	PhotoURL   string `gorm:"type:text" json:"photoUrl"`
	Votes      int64  `gorm:"not null;default:0" json:"votes"`
}

// Vote is one student's ballot in one election. The composite unique
// index is the storage-level guarantee that concurrent double submits
// cannot both succeed. Vote rows are hard-deleted on reversal (no
// DeletedAt column), otherwise a reversed ballot would keep holding the
// (election_id, student_id) pair.
type Vote struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ElectionID  uint      `gorm:"not null;uniqueIndex:idx_votes_election_student" json:"electionId"`
	CandidateID uint      `gorm:"not null;index" json:"candidateId"`
	StudentID   string    `gorm:"not null;size:64;uniqueIndex:idx_votes_election_student" json:"studentId"`
	VotedAt     time.Time `json:"votedAt"`
}

// OTPValidity is how long a password-reset code stays usable.
const OTPValidity = 10 * time.Minute

// PasswordOTP is a transient one-time code for the password reset flow.
// Expired rows are filtered at read time and reaped by a sweeper, so a
// row older than OTPValidity is treated as nonexistent either way.
type PasswordOTP struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"not null;index" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	Purpose   string    `gorm:"not null;default:forgot-password" json:"purpose"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExpiredBefore returns the cutoff instant: rows created before it are dead.
func ExpiredBefore(now time.Time) time.Time {
	return now.Add(-OTPValidity)
}
