package gov

import "errors"

// Creation-time validation errors, reported first-violation-wins in the
// order: empty title, empty description, title length, description length,
// deadline.
var (
	ErrEmptyTitle         = errors.New("title is empty")
	ErrEmptyDescription   = errors.New("description is empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrInvalidDeadline    = errors.New("deadline must be after creation time")
)

// Lookup and voting-state errors.
var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrProposalNotActive = errors.New("proposal is not active")
	ErrProposalExpired   = errors.New("proposal voting deadline has passed")
	ErrAlreadyVoted      = errors.New("voter has already voted on this proposal")
	ErrVoteCountOverflow = errors.New("vote counter at maximum")
	ErrNoBallot          = errors.New("voter has not voted on this proposal")
)
