package gov

import "time"

// ProposalCreatedEvent is emitted after a proposal is stored.
type ProposalCreatedEvent struct {
	ID          uint64
	Author      string
	Title       string
	Deadline    time.Time
	DetailsHash DetailsHash
}

// VoteCastEvent is emitted after a ballot is recorded.
type VoteCastEvent struct {
	ProposalID uint64
	Voter      string
	Choice     bool
}

// Emitter receives change notifications from the store. Notifications fire
// after the corresponding mutation commits and carry no delivery guarantee;
// implementations must not call back into the store.
type Emitter interface {
	ProposalCreated(ProposalCreatedEvent)
	VoteCast(VoteCastEvent)
}

// NopEmitter discards all notifications.
type NopEmitter struct{}

func (NopEmitter) ProposalCreated(ProposalCreatedEvent) {}
func (NopEmitter) VoteCast(VoteCastEvent)               {}
