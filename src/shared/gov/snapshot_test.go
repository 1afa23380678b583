package gov

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	s := NewStore(nil)
	deadline := testBase.Add(time.Hour)
	a1 := mustCreate(t, s, "alice", "a1", deadline)
	b1 := mustCreate(t, s, "bob", "b1", deadline)
	a2 := mustCreate(t, s, "alice", "a2", deadline)
	require.NoError(t, s.CastVote(a1, "bob", true, testBase))
	require.NoError(t, s.CastVote(a1, "carol", false, testBase))
	require.NoError(t, s.CastVote(b1, "alice", true, testBase))

	restored := NewStore(nil)
	require.NoError(t, restored.RestoreState(s.ExportState()))

	assert.Equal(t, uint64(3), restored.TotalCount())
	assert.Equal(t, []uint64{a1, a2}, restored.IDsByAuthor("alice"))
	assert.Equal(t, []uint64{b1}, restored.IDsByAuthor("bob"))

	p, err := restored.Proposal(a1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.YesVotes)
	assert.Equal(t, uint32(1), p.NoVotes)

	choice, err := restored.Vote(a1, "bob")
	require.NoError(t, err)
	assert.True(t, choice)
	assert.True(t, restored.HasVoted(b1, "alice"))
	assert.False(t, restored.HasVoted(a2, "alice"))

	t.Run("restored store keeps allocating dense ids", func(t *testing.T) {
		id := mustCreate(t, restored, "carol", "c1", deadline)
		assert.Equal(t, uint64(4), id)
	})

	t.Run("one-vote rule survives restore", func(t *testing.T) {
		assert.ErrorIs(t, restored.CastVote(a1, "bob", false, testBase), ErrAlreadyVoted)
	})
}

func TestRestoreStateRejectsCorrupt(t *testing.T) {
	deadline := testBase.Add(time.Hour)
	valid := func() State {
		s := NewStore(nil)
		mustCreate(t, s, "alice", "a1", deadline)
		return s.ExportState()
	}

	t.Run("non-dense ids", func(t *testing.T) {
		st := valid()
		st.Proposals[0].ID = 2
		assert.Error(t, NewStore(nil).RestoreState(st))
	})

	t.Run("ballot for unknown proposal", func(t *testing.T) {
		st := valid()
		st.Ballots = append(st.Ballots, BallotRecord{ProposalID: 9, Voter: "bob", Choice: true})
		assert.Error(t, NewStore(nil).RestoreState(st))
	})

	t.Run("duplicate ballot", func(t *testing.T) {
		st := valid()
		st.Ballots = append(st.Ballots,
			BallotRecord{ProposalID: 1, Voter: "bob", Choice: true},
			BallotRecord{ProposalID: 1, Voter: "bob", Choice: false},
		)
		assert.Error(t, NewStore(nil).RestoreState(st))
	})

	t.Run("failed restore leaves store untouched", func(t *testing.T) {
		s := NewStore(nil)
		mustCreate(t, s, "alice", "kept", deadline)
		st := valid()
		st.Proposals[0].ID = 7
		require.Error(t, s.RestoreState(st))
		p, err := s.Proposal(1)
		require.NoError(t, err)
		assert.Equal(t, "kept", p.Title)
	})
}

func TestParseDetailsHash(t *testing.T) {
	h := testHash(0xab)

	t.Run("round trip via hex", func(t *testing.T) {
		parsed, err := ParseDetailsHash(h.Hex())
		require.NoError(t, err)
		assert.Equal(t, h, parsed)
	})

	t.Run("without 0x prefix", func(t *testing.T) {
		parsed, err := ParseDetailsHash(h.Hex()[2:])
		require.NoError(t, err)
		assert.Equal(t, h, parsed)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := ParseDetailsHash("0xabcd")
		assert.Error(t, err)
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := ParseDetailsHash("zz")
		assert.Error(t, err)
	})
}
