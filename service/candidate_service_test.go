package service

import (
	"testing"

	"campus-voting-backend/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCandidateEvictsCachedResults(t *testing.T) {
	db := newTestDB(t)
	t.Setenv("REDIS_MOCK", "true")
	require.NoError(t, cache.InitRedis())

	election, candidates := seedOngoingElection(t, db, "Alice", "Bob")
	cache.InvalidateResults(election.ID)

	_, err := SubmitVote(election.ID, candidates[0].ID, "S1001")
	require.NoError(t, err)

	// Prime the cache.
	results, err := ComputeResults(election.ID)
	require.NoError(t, err)
	require.Len(t, results.Results, 2)

	require.NoError(t, DeleteCandidate(candidates[1].ID))

	results, err = ComputeResults(election.ID)
	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "Alice", results.Results[0].Name)
}

func TestCreateCandidateEvictsCachedResults(t *testing.T) {
	db := newTestDB(t)
	t.Setenv("REDIS_MOCK", "true")
	require.NoError(t, cache.InitRedis())

	election, _ := seedOngoingElection(t, db, "Alice")
	cache.InvalidateResults(election.ID)

	results, err := ComputeResults(election.ID)
	require.NoError(t, err)
	require.Len(t, results.Results, 1)

	_, err = CreateCandidate(CandidateInput{
		Name:       "Bob",
		Position:   "Member",
		ElectionID: election.ID,
		Department: "ECE",
	})
	require.NoError(t, err)

	results, err = ComputeResults(election.ID)
	require.NoError(t, err)
	assert.Len(t, results.Results, 2)
}

func TestCreateCandidateUnknownElection(t *testing.T) {
	newTestDB(t)

	_, err := CreateCandidate(CandidateInput{
		Name:       "Alice",
		Position:   "Member",
		ElectionID: 9999,
		Department: "ECE",
	})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteCandidateNotFound(t *testing.T) {
	newTestDB(t)

	err := DeleteCandidate(9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
