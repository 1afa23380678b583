package gov

import (
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// Field limits for proposal creation.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 200
)

// MaxVoteCount bounds each tally counter. Unreachable in any realistic
// deployment; the overflow check exists as an invariant guard.
const MaxVoteCount = math.MaxUint32

// DetailsHashLen is the size of a proposal's content fingerprint.
const DetailsHashLen = 32

// DetailsHash references externally stored detail content. The store treats
// it as opaque beyond its fixed size.
type DetailsHash [DetailsHashLen]byte

func (h DetailsHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// ParseDetailsHash decodes a 32-byte hex string, with or without 0x prefix.
func ParseDetailsHash(s string) (DetailsHash, error) {
	if len(s) > 1 && s[:2] == "0x" {
		s = s[2:]
	}
	var h DetailsHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("details hash: %w", err)
	}
	if len(b) != DetailsHashLen {
		return h, fmt.Errorf("details hash: need %d bytes, got %d", DetailsHashLen, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Proposal is one item of record. IDs are dense and start at 1; id 0 is the
// "does not exist" sentinel. Only the two tally counters change after
// creation.
type Proposal struct {
	ID          uint64
	Author      string
	YesVotes    uint32
	NoVotes     uint32
	CreatedAt   time.Time
	Deadline    time.Time
	Active      bool
	Title       string
	Description string
	DetailsHash DetailsHash
}

// Ballot is one voter's recorded choice on one proposal. Once recorded it is
// immutable; there is no vote change or retraction.
type Ballot struct {
	HasVoted bool
	Choice   bool // true = yes
}

type ballotKey struct {
	proposalID uint64
	voter      string
}
