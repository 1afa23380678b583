package gov

import (
	"sync"
	"time"
)

// Store owns all proposal, ballot and author-index state. A single RWMutex
// serializes writers; reads run against a consistent snapshot under the read
// lock. Current time is always supplied by the caller so behavior stays
// deterministic.
type Store struct {
	mu        sync.RWMutex
	proposals []Proposal // index i holds the proposal with id i+1
	ballots   map[ballotKey]Ballot
	byAuthor  map[string][]uint64
	emitter   Emitter
}

// NewStore creates an empty store. A nil emitter disables notifications.
func NewStore(emitter Emitter) *Store {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Store{
		ballots:  make(map[ballotKey]Ballot),
		byAuthor: make(map[string][]uint64),
		emitter:  emitter,
	}
}

// CreateProposal validates the fields, allocates the next sequential id
// (starting at 1), records authorship and emits a creation event. Validation
// errors are reported first-violation-wins in a fixed order.
func (s *Store) CreateProposal(author, title, description string, detailsHash DetailsHash, deadline, now time.Time) (uint64, error) {
	if len(title) == 0 {
		return 0, ErrEmptyTitle
	}
	if len(description) == 0 {
		return 0, ErrEmptyDescription
	}
	if len(title) > MaxTitleLen {
		return 0, ErrTitleTooLong
	}
	if len(description) > MaxDescriptionLen {
		return 0, ErrDescriptionTooLong
	}
	if !deadline.After(now) {
		return 0, ErrInvalidDeadline
	}

	s.mu.Lock()
	id := uint64(len(s.proposals)) + 1
	s.proposals = append(s.proposals, Proposal{
		ID:          id,
		Author:      author,
		CreatedAt:   now,
		Deadline:    deadline,
		Active:      true,
		Title:       title,
		Description: description,
		DetailsHash: detailsHash,
	})
	s.byAuthor[author] = append(s.byAuthor[author], id)
	s.mu.Unlock()

	s.emitter.ProposalCreated(ProposalCreatedEvent{
		ID:          id,
		Author:      author,
		Title:       title,
		Deadline:    deadline,
		DetailsHash: detailsHash,
	})
	return id, nil
}

// Proposal returns the proposal with the given id. Id 0 is the "does not
// exist" sentinel and always fails.
func (s *Store) Proposal(id uint64) (Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposalLocked(id)
}

func (s *Store) proposalLocked(id uint64) (Proposal, error) {
	if id == 0 || id > uint64(len(s.proposals)) {
		return Proposal{}, ErrProposalNotFound
	}
	return s.proposals[id-1], nil
}

// TotalCount reports how many proposals have ever been created.
func (s *Store) TotalCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.proposals))
}

// IDsByAuthor returns the ids of proposals created by author, oldest first.
func (s *Store) IDsByAuthor(author string) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint64, len(s.byAuthor[author]))
	copy(ids, s.byAuthor[author])
	return ids
}

// CountByAuthor reports how many proposals author has created.
func (s *Store) CountByAuthor(author string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.byAuthor[author]))
}
