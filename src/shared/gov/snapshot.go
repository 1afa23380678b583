package gov

import "fmt"

// BallotRecord is one ballot in exported form.
type BallotRecord struct {
	ProposalID uint64
	Voter      string
	Choice     bool
}

// State is the full exported store state. Proposals appear in id order; the
// author index is not exported because id order equals creation order, so it
// is rebuilt on restore.
type State struct {
	Proposals []Proposal
	Ballots   []BallotRecord
}

// ExportState copies out the complete store state under the read lock.
func (s *Store) ExportState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{Proposals: make([]Proposal, len(s.proposals))}
	copy(st.Proposals, s.proposals)

	st.Ballots = make([]BallotRecord, 0, len(s.ballots))
	for k, b := range s.ballots {
		st.Ballots = append(st.Ballots, BallotRecord{
			ProposalID: k.proposalID,
			Voter:      k.voter,
			Choice:     b.Choice,
		})
	}
	return st
}

// RestoreState replaces the store's contents with a previously exported
// state. Proposal ids must be dense starting at 1 and ballots must reference
// existing proposals; anything else means the snapshot is corrupt.
func (s *Store) RestoreState(st State) error {
	proposals := make([]Proposal, len(st.Proposals))
	byAuthor := make(map[string][]uint64)
	for i, p := range st.Proposals {
		want := uint64(i) + 1
		if p.ID != want {
			return fmt.Errorf("restore: proposal at position %d has id %d, want %d", i, p.ID, want)
		}
		proposals[i] = p
		byAuthor[p.Author] = append(byAuthor[p.Author], p.ID)
	}

	ballots := make(map[ballotKey]Ballot, len(st.Ballots))
	for _, b := range st.Ballots {
		if b.ProposalID == 0 || b.ProposalID > uint64(len(proposals)) {
			return fmt.Errorf("restore: ballot references unknown proposal %d", b.ProposalID)
		}
		key := ballotKey{proposalID: b.ProposalID, voter: b.Voter}
		if _, dup := ballots[key]; dup {
			return fmt.Errorf("restore: duplicate ballot for proposal %d voter %s", b.ProposalID, b.Voter)
		}
		ballots[key] = Ballot{HasVoted: true, Choice: b.Choice}
	}

	s.mu.Lock()
	s.proposals = proposals
	s.ballots = ballots
	s.byAuthor = byAuthor
	s.mu.Unlock()
	return nil
}
