package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/quorumdao/govproposals/src/shared/gov"
)

// StreamEmitter publishes store change notifications to the redis event
// stream for off-process observers. Delivery is fire-and-forget; a failed
// publish is logged and dropped, never propagated back into the store.
type StreamEmitter struct {
	rdb *redis.Client
}

func NewStreamEmitter(rdb *redis.Client) *StreamEmitter {
	return &StreamEmitter{rdb: rdb}
}

func (e *StreamEmitter) ProposalCreated(ev gov.ProposalCreatedEvent) {
	err := PublishEvent(context.Background(), e.rdb, map[string]interface{}{
		"type":         "proposal_created",
		"id":           ev.ID,
		"author":       ev.Author,
		"title":        ev.Title,
		"deadline":     ev.Deadline.Unix(),
		"details_hash": ev.DetailsHash.Hex(),
	})
	if err != nil {
		log.Printf("emit proposal_created %d: %v", ev.ID, err)
	}
}

func (e *StreamEmitter) VoteCast(ev gov.VoteCastEvent) {
	choice := "no"
	if ev.Choice {
		choice = "yes"
	}
	err := PublishEvent(context.Background(), e.rdb, map[string]interface{}{
		"type":   "vote_cast",
		"id":     ev.ProposalID,
		"voter":  ev.Voter,
		"choice": choice,
	})
	if err != nil {
		log.Printf("emit vote_cast %d: %v", ev.ProposalID, err)
	}
}
