package gov

import "time"

// CastVote records one ballot for voter on the given proposal and bumps the
// matching tally. Preconditions are checked in order: the proposal must
// exist, be active, not be past its deadline, and the voter must not have
// voted before. The overflow guard runs before any state is touched, so a
// failed cast never partially commits.
func (s *Store) CastVote(proposalID uint64, voter string, choice bool, now time.Time) error {
	s.mu.Lock()
	err := s.castVoteLocked(proposalID, voter, choice, now)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emitter.VoteCast(VoteCastEvent{ProposalID: proposalID, Voter: voter, Choice: choice})
	return nil
}

func (s *Store) castVoteLocked(proposalID uint64, voter string, choice bool, now time.Time) error {
	p, err := s.proposalLocked(proposalID)
	if err != nil {
		return err
	}
	if !p.Active {
		return ErrProposalNotActive
	}
	if now.After(p.Deadline) {
		return ErrProposalExpired
	}
	key := ballotKey{proposalID: proposalID, voter: voter}
	if s.ballots[key].HasVoted {
		return ErrAlreadyVoted
	}
	if choice && p.YesVotes == MaxVoteCount {
		return ErrVoteCountOverflow
	}
	if !choice && p.NoVotes == MaxVoteCount {
		return ErrVoteCountOverflow
	}

	s.ballots[key] = Ballot{HasVoted: true, Choice: choice}
	if choice {
		s.proposals[proposalID-1].YesVotes++
	} else {
		s.proposals[proposalID-1].NoVotes++
	}
	return nil
}

// HasVoted reports whether voter has a recorded ballot on the proposal. It
// never errors; unknown proposals and voters simply report false.
func (s *Store) HasVoted(proposalID uint64, voter string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ballots[ballotKey{proposalID: proposalID, voter: voter}].HasVoted
}

// Vote returns the recorded choice, or ErrNoBallot when the voter has no
// ballot on that proposal.
func (s *Store) Vote(proposalID uint64, voter string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.ballots[ballotKey{proposalID: proposalID, voter: voter}]
	if !b.HasVoted {
		return false, ErrNoBallot
	}
	return b.Choice, nil
}
