package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEvent(t *testing.T) {
	t.Run("proposal created", func(t *testing.T) {
		ev := parseEvent(map[string]interface{}{
			"type":         "proposal_created",
			"id":           "7",
			"author":       "alice",
			"title":        "Upgrade treasury",
			"deadline":     "1700003600",
			"details_hash": "0xabcd",
		})
		assert.Equal(t, "proposal_created", ev.Type)
		assert.Equal(t, uint64(7), ev.ID)
		assert.Equal(t, "alice", ev.Author)
		assert.Equal(t, "Upgrade treasury", ev.Title)
		assert.Equal(t, int64(1700003600), ev.Deadline)
	})

	t.Run("vote cast", func(t *testing.T) {
		ev := parseEvent(map[string]interface{}{
			"type":   "vote_cast",
			"id":     "7",
			"voter":  "bob",
			"choice": "yes",
		})
		assert.Equal(t, "vote_cast", ev.Type)
		assert.Equal(t, "bob", ev.Voter)
		assert.Equal(t, "yes", ev.Choice)
	})

	t.Run("missing fields stay zero", func(t *testing.T) {
		ev := parseEvent(map[string]interface{}{"type": "vote_cast"})
		assert.Zero(t, ev.ID)
		assert.Empty(t, ev.Voter)
	})
}
