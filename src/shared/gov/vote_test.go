package gov

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVote(t *testing.T) {
	deadline := testBase.Add(time.Hour)

	t.Run("tallies count distinct voters", func(t *testing.T) {
		s := NewStore(nil)
		id := mustCreate(t, s, "alice", "Proposal 1", deadline)

		require.NoError(t, s.CastVote(id, "bob", true, testBase))
		require.NoError(t, s.CastVote(id, "carol", true, testBase))
		require.NoError(t, s.CastVote(id, "dave", false, testBase))

		p, err := s.Proposal(id)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), p.YesVotes)
		assert.Equal(t, uint32(1), p.NoVotes)
	})

	t.Run("second vote rejected, tallies unchanged", func(t *testing.T) {
		s := NewStore(nil)
		id := mustCreate(t, s, "alice", "Proposal 1", deadline)

		require.NoError(t, s.CastVote(id, "bob", true, testBase))
		err := s.CastVote(id, "bob", false, testBase)
		assert.ErrorIs(t, err, ErrAlreadyVoted)

		p, err := s.Proposal(id)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), p.YesVotes)
		assert.Zero(t, p.NoVotes)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		s := NewStore(nil)
		assert.ErrorIs(t, s.CastVote(0, "bob", true, testBase), ErrProposalNotFound)
		assert.ErrorIs(t, s.CastVote(42, "bob", true, testBase), ErrProposalNotFound)
	})

	t.Run("voting at the deadline instant succeeds", func(t *testing.T) {
		s := NewStore(nil)
		id := mustCreate(t, s, "alice", "Proposal 1", deadline)
		assert.NoError(t, s.CastVote(id, "bob", true, deadline))
	})

	t.Run("voting after the deadline fails", func(t *testing.T) {
		s := NewStore(nil)
		id := mustCreate(t, s, "alice", "Proposal 1", deadline)
		err := s.CastVote(id, "bob", true, deadline.Add(time.Second))
		assert.ErrorIs(t, err, ErrProposalExpired)
	})

	t.Run("inactive proposal rejected before expiry check", func(t *testing.T) {
		s := NewStore(nil)
		id := mustCreate(t, s, "alice", "Proposal 1", deadline)

		st := s.ExportState()
		st.Proposals[0].Active = false
		require.NoError(t, s.RestoreState(st))

		// Both inactive and expired: the activity check runs first.
		err := s.CastVote(id, "bob", true, deadline.Add(time.Hour))
		assert.ErrorIs(t, err, ErrProposalNotActive)
	})

	t.Run("counter at maximum overflows without mutating", func(t *testing.T) {
		s := NewStore(nil)
		id := mustCreate(t, s, "alice", "Proposal 1", deadline)

		st := s.ExportState()
		st.Proposals[0].YesVotes = MaxVoteCount
		require.NoError(t, s.RestoreState(st))

		err := s.CastVote(id, "bob", true, testBase)
		assert.ErrorIs(t, err, ErrVoteCountOverflow)
		assert.False(t, s.HasVoted(id, "bob"))

		// The other counter is unaffected.
		assert.NoError(t, s.CastVote(id, "bob", false, testBase))
	})
}

func TestHasVoted(t *testing.T) {
	s := NewStore(nil)
	id := mustCreate(t, s, "alice", "Proposal 1", testBase.Add(time.Hour))

	assert.False(t, s.HasVoted(id, "bob"))
	assert.False(t, s.HasVoted(999, "bob"), "nonexistent proposal reports false, not an error")

	require.NoError(t, s.CastVote(id, "bob", true, testBase))
	assert.True(t, s.HasVoted(id, "bob"))
	assert.False(t, s.HasVoted(id, "carol"))
}

func TestVote(t *testing.T) {
	s := NewStore(nil)
	id := mustCreate(t, s, "alice", "Proposal 1", testBase.Add(time.Hour))

	t.Run("no ballot recorded", func(t *testing.T) {
		_, err := s.Vote(id, "bob")
		assert.ErrorIs(t, err, ErrNoBallot)
	})

	t.Run("returns recorded choice", func(t *testing.T) {
		require.NoError(t, s.CastVote(id, "bob", true, testBase))
		require.NoError(t, s.CastVote(id, "carol", false, testBase))

		choice, err := s.Vote(id, "bob")
		require.NoError(t, err)
		assert.True(t, choice)

		choice, err = s.Vote(id, "carol")
		require.NoError(t, err)
		assert.False(t, choice)
	})
}
