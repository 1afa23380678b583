package gov

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(ps []Proposal) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestProposalsPaging(t *testing.T) {
	s := NewStore(nil)
	deadline := testBase.Add(time.Hour)
	for i := 1; i <= 3; i++ {
		mustCreate(t, s, "alice", fmt.Sprintf("Proposal %d", i), deadline)
	}

	t.Run("first page newest first", func(t *testing.T) {
		got := s.Proposals(0, 2)
		assert.Equal(t, []string{"Proposal 3", "Proposal 2"}, titles(got))
	})

	t.Run("second page", func(t *testing.T) {
		got := s.Proposals(2, 2)
		assert.Equal(t, []string{"Proposal 1"}, titles(got))
	})

	t.Run("offset beyond matches is empty", func(t *testing.T) {
		assert.Empty(t, s.Proposals(3, 2))
		assert.Empty(t, s.Proposals(100, 2))
	})

	t.Run("idempotent for unchanged state", func(t *testing.T) {
		assert.Equal(t, s.Proposals(0, 2), s.Proposals(0, 2))
	})
}

func TestLimitClamp(t *testing.T) {
	s := NewStore(nil)
	deadline := testBase.Add(time.Hour)
	for i := 0; i < MaxPageLimit+10; i++ {
		mustCreate(t, s, "alice", fmt.Sprintf("p%d", i), deadline)
	}

	t.Run("limit 0 behaves as 50", func(t *testing.T) {
		assert.Len(t, s.Proposals(0, 0), MaxPageLimit)
	})

	t.Run("limit 1000 behaves as 50", func(t *testing.T) {
		assert.Len(t, s.Proposals(0, 1000), MaxPageLimit)
	})

	t.Run("limit within range honored", func(t *testing.T) {
		assert.Len(t, s.Proposals(0, 7), 7)
	})
}

// mixedStore creates six proposals alternating between alice and bob, where
// the even-numbered ones (2, 4, 6) expire at testBase+1h and the odd ones at
// testBase+10h. Queried at testBase+2h, proposals 2, 4, 6 are closed.
func mixedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	authors := []string{"alice", "bob"}
	for i := 1; i <= 6; i++ {
		deadline := testBase.Add(10 * time.Hour)
		if i%2 == 0 {
			deadline = testBase.Add(time.Hour)
		}
		_, err := s.CreateProposal(authors[i%2], fmt.Sprintf("Proposal %d", i), "desc", testHash(1), deadline, testBase)
		require.NoError(t, err)
	}
	return s
}

func TestStatusFilteredPaging(t *testing.T) {
	s := mixedStore(t)
	now := testBase.Add(2 * time.Hour)

	t.Run("open newest first", func(t *testing.T) {
		got := s.OpenProposals(0, 50, now)
		assert.Equal(t, []string{"Proposal 5", "Proposal 3", "Proposal 1"}, titles(got))
	})

	t.Run("closed newest first", func(t *testing.T) {
		got := s.ClosedProposals(0, 50, now)
		assert.Equal(t, []string{"Proposal 6", "Proposal 4", "Proposal 2"}, titles(got))
	})

	t.Run("offset counts matching entries only", func(t *testing.T) {
		got := s.OpenProposals(1, 50, now)
		assert.Equal(t, []string{"Proposal 3", "Proposal 1"}, titles(got))

		got = s.ClosedProposals(2, 50, now)
		assert.Equal(t, []string{"Proposal 2"}, titles(got))
	})

	t.Run("before any deadline everything is open", func(t *testing.T) {
		assert.Len(t, s.OpenProposals(0, 50, testBase), 6)
		assert.Empty(t, s.ClosedProposals(0, 50, testBase))
	})

	t.Run("counts re-derive status from now", func(t *testing.T) {
		assert.Equal(t, uint64(3), s.CountOpen(now))
		assert.Equal(t, uint64(3), s.CountClosed(now))
		assert.Equal(t, uint64(6), s.CountOpen(testBase))
		assert.Equal(t, uint64(0), s.CountClosed(testBase))
	})
}

func TestAuthorScopedPaging(t *testing.T) {
	s := mixedStore(t)
	now := testBase.Add(2 * time.Hour)

	// bob authored 1, 3, 5 (all open at now); alice authored 2, 4, 6 (closed).
	t.Run("all by author newest first", func(t *testing.T) {
		got := s.ProposalsByAuthor("bob", 0, 50)
		assert.Equal(t, []string{"Proposal 5", "Proposal 3", "Proposal 1"}, titles(got))
	})

	t.Run("open by author", func(t *testing.T) {
		got := s.OpenProposalsByAuthor("bob", 0, 50, now)
		assert.Equal(t, []string{"Proposal 5", "Proposal 3", "Proposal 1"}, titles(got))
		assert.Empty(t, s.OpenProposalsByAuthor("alice", 0, 50, now))
	})

	t.Run("closed by author", func(t *testing.T) {
		got := s.ClosedProposalsByAuthor("alice", 0, 50, now)
		assert.Equal(t, []string{"Proposal 6", "Proposal 4", "Proposal 2"}, titles(got))
		assert.Empty(t, s.ClosedProposalsByAuthor("bob", 0, 50, now))
	})

	t.Run("author counts", func(t *testing.T) {
		assert.Equal(t, uint64(3), s.CountOpenByAuthor("bob", now))
		assert.Equal(t, uint64(0), s.CountClosedByAuthor("bob", now))
		assert.Equal(t, uint64(3), s.CountClosedByAuthor("alice", now))
	})

	t.Run("unknown author pages are empty", func(t *testing.T) {
		assert.Empty(t, s.ProposalsByAuthor("carol", 0, 50))
		assert.Zero(t, s.CountOpenByAuthor("carol", now))
	})

	t.Run("author paging with offset", func(t *testing.T) {
		got := s.ProposalsByAuthor("bob", 2, 2)
		assert.Equal(t, []string{"Proposal 1"}, titles(got))
	})
}

func TestPaginationCompleteness(t *testing.T) {
	s := NewStore(nil)
	deadline := testBase.Add(time.Hour)
	const total = 123
	for i := 1; i <= total; i++ {
		mustCreate(t, s, "alice", fmt.Sprintf("p%d", i), deadline)
	}

	const limit = 10
	var all []Proposal
	for offset := 0; ; offset += limit {
		page := s.Proposals(offset, limit)
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
	}

	require.Len(t, all, total)
	seen := make(map[uint64]bool, total)
	for i, p := range all {
		assert.Equal(t, uint64(total-i), p.ID, "strictly newest first")
		assert.False(t, seen[p.ID], "no duplicates")
		seen[p.ID] = true
	}
}
