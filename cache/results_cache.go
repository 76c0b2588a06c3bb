package cache

import "fmt"

// Election results are the one read-heavy payload in the system: every
// client on the results page polls them. Writes (votes) invalidate the
// key so the next read recomputes from the database.

func resultsKey(electionID uint) string {
	return fmt.Sprintf("election:%d:results", electionID)
}

// GetResults returns the cached results JSON for an election, if present.
func GetResults(electionID uint) (string, bool) {
	return get(resultsKey(electionID))
}

// SetResults caches the results JSON for an election.
func SetResults(electionID uint, payload string) {
	set(resultsKey(electionID), payload, resultsTTL)
}

// InvalidateResults drops the cached results after a vote is recorded or
// reversed, and after any structural change to the election.
func InvalidateResults(electionID uint) {
	del(resultsKey(electionID))
}
