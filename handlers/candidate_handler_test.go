package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"campus-voting-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCandidate(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	now := time.Now()
	election := createTestElection(db, now.Add(24*time.Hour), now.Add(48*time.Hour))

	w := doJSON(router, "POST", "/api/admin/candidates", map[string]interface{}{
		"name":       "Alice",
		"position":   "President",
		"electionId": election.ID,
		"department": "CSE",
		"photoUrl":   "https://example.com/alice.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Candidate models.Candidate `json:"candidate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Candidate.ID)
	assert.EqualValues(t, 0, resp.Candidate.Votes)
}

func TestCreateCandidateUnknownElection(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	w := doJSON(router, "POST", "/api/admin/candidates", map[string]interface{}{
		"name":       "Alice",
		"position":   "President",
		"electionId": 9999,
		"department": "CSE",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCandidatesByElection(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	now := time.Now()
	first := createTestElection(db, now.Add(24*time.Hour), now.Add(48*time.Hour))
	second := createTestElection(db, now.Add(24*time.Hour), now.Add(48*time.Hour))
	createTestCandidate(db, first.ID, "Alice")
	createTestCandidate(db, first.ID, "Bob")
	createTestCandidate(db, second.ID, "Carol")

	w := doJSON(router, "GET", "/api/candidates/election/"+itoa(first.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var candidates []models.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, first.ID, c.ElectionID)
	}

	w = doJSON(router, "GET", "/api/candidates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
	assert.Len(t, candidates, 3)
}

func TestDeleteCandidate(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	now := time.Now()
	election := createTestElection(db, now.Add(24*time.Hour), now.Add(48*time.Hour))
	candidate := createTestCandidate(db, election.ID, "Alice")

	w := doJSON(router, "DELETE", "/api/admin/candidates/"+itoa(candidate.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/admin/candidates/"+itoa(candidate.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCandidateKeepsVotes(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	now := time.Now()
	election := createTestElection(db, now.Add(-1*time.Hour), now.Add(1*time.Hour))
	candidate := createTestCandidate(db, election.ID, "Alice")
	db.Create(&models.Vote{
		ElectionID:  election.ID,
		CandidateID: candidate.ID,
		StudentID:   "S1001",
		VotedAt:     now,
	})

	w := doJSON(router, "DELETE", "/api/admin/candidates/"+itoa(candidate.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Vote{}).Where("election_id = ?", election.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
