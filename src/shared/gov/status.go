package gov

import "time"

// IsOpen reports whether a proposal still accepts votes at the given time.
// The deadline instant itself is inclusive. Closed is the negation: the
// proposal was deactivated or its deadline has passed.
func IsOpen(p Proposal, now time.Time) bool {
	return p.Active && !now.After(p.Deadline)
}

// IsOpen looks up the proposal and classifies it at the given time.
func (s *Store) IsOpen(id uint64, now time.Time) (bool, error) {
	p, err := s.Proposal(id)
	if err != nil {
		return false, err
	}
	return IsOpen(p, now), nil
}
