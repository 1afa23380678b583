package gov

import "time"

// MaxPageLimit caps every paginated read. A limit of 0 or anything above the
// cap is silently clamped; paging parameters never error.
const MaxPageLimit = 50

// StatusFilter selects which proposals a paginated read considers.
type StatusFilter int

const (
	StatusAny StatusFilter = iota
	StatusOpen
	StatusClosed
)

func (f StatusFilter) matches(p Proposal, now time.Time) bool {
	switch f {
	case StatusOpen:
		return IsOpen(p, now)
	case StatusClosed:
		return !IsOpen(p, now)
	default:
		return true
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// collectLocked walks a candidate sequence newest-first and gathers up to
// limit proposals matching the filter, skipping offset matches first. The
// sequence is described by its length and an id accessor so the full
// creation sequence needs no materialized id slice.
func (s *Store) collectLocked(n int, idAt func(int) uint64, filter StatusFilter, offset, limit int, now time.Time) []Proposal {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	out := make([]Proposal, 0, limit)
	skipped := 0
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		p := s.proposals[idAt(i)-1]
		if !filter.matches(p, now) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) countLocked(n int, idAt func(int) uint64, filter StatusFilter, now time.Time) uint64 {
	var total uint64
	for i := 0; i < n; i++ {
		if filter.matches(s.proposals[idAt(i)-1], now) {
			total++
		}
	}
	return total
}

func fullSeq(i int) uint64 { return uint64(i) + 1 }

// Proposals returns a newest-first page over all proposals.
func (s *Store) Proposals(offset, limit int) []Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(len(s.proposals), fullSeq, StatusAny, offset, limit, time.Time{})
}

// OpenProposals returns a newest-first page of proposals still open at now.
func (s *Store) OpenProposals(offset, limit int, now time.Time) []Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(len(s.proposals), fullSeq, StatusOpen, offset, limit, now)
}

// ClosedProposals returns a newest-first page of proposals closed at now.
func (s *Store) ClosedProposals(offset, limit int, now time.Time) []Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(len(s.proposals), fullSeq, StatusClosed, offset, limit, now)
}

// ProposalsByAuthor returns a newest-first page over one author's proposals.
func (s *Store) ProposalsByAuthor(author string, offset, limit int) []Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byAuthor[author]
	return s.collectLocked(len(ids), func(i int) uint64 { return ids[i] }, StatusAny, offset, limit, time.Time{})
}

// OpenProposalsByAuthor returns the author's proposals still open at now,
// newest first.
func (s *Store) OpenProposalsByAuthor(author string, offset, limit int, now time.Time) []Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byAuthor[author]
	return s.collectLocked(len(ids), func(i int) uint64 { return ids[i] }, StatusOpen, offset, limit, now)
}

// ClosedProposalsByAuthor returns the author's proposals closed at now,
// newest first.
func (s *Store) ClosedProposalsByAuthor(author string, offset, limit int, now time.Time) []Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byAuthor[author]
	return s.collectLocked(len(ids), func(i int) uint64 { return ids[i] }, StatusClosed, offset, limit, now)
}

// CountOpen reports how many proposals are open at now. Always a fresh scan;
// status is re-derived from the supplied time on every call.
func (s *Store) CountOpen(now time.Time) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(len(s.proposals), fullSeq, StatusOpen, now)
}

// CountClosed reports how many proposals are closed at now.
func (s *Store) CountClosed(now time.Time) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(len(s.proposals), fullSeq, StatusClosed, now)
}

// CountOpenByAuthor reports how many of the author's proposals are open at now.
func (s *Store) CountOpenByAuthor(author string, now time.Time) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byAuthor[author]
	return s.countLocked(len(ids), func(i int) uint64 { return ids[i] }, StatusOpen, now)
}

// CountClosedByAuthor reports how many of the author's proposals are closed at now.
func (s *Store) CountClosedByAuthor(author string, now time.Time) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byAuthor[author]
	return s.countLocked(len(ids), func(i int) uint64 { return ids[i] }, StatusClosed, now)
}
