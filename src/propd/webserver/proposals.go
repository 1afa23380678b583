package webserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/blake2b"

	"github.com/quorumdao/govproposals/src/shared/gov"
)

type Proposals struct {
	store     *gov.Store
	sanitizer *bluemonday.Policy
}

func NewProposals(store *gov.Store) Proposals {
	return Proposals{store: store, sanitizer: bluemonday.StrictPolicy()}
}

type proposalJSON struct {
	ID          uint64 `json:"id"`
	Author      string `json:"author"`
	YesVotes    uint32 `json:"yesVotes"`
	NoVotes     uint32 `json:"noVotes"`
	CreatedAt   int64  `json:"createdAt"`
	Deadline    int64  `json:"deadline"`
	Active      bool   `json:"active"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DetailsHash string `json:"detailsHash"`
	Open        bool   `json:"open"`
}

func renderProposal(p gov.Proposal, now time.Time) proposalJSON {
	return proposalJSON{
		ID:          p.ID,
		Author:      p.Author,
		YesVotes:    p.YesVotes,
		NoVotes:     p.NoVotes,
		CreatedAt:   p.CreatedAt.Unix(),
		Deadline:    p.Deadline.Unix(),
		Active:      p.Active,
		Title:       p.Title,
		Description: p.Description,
		DetailsHash: p.DetailsHash.Hex(),
		Open:        gov.IsOpen(p, now),
	}
}

func renderProposals(ps []gov.Proposal, now time.Time) []proposalJSON {
	out := make([]proposalJSON, len(ps))
	for i, p := range ps {
		out[i] = renderProposal(p, now)
	}
	return out
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, gov.ErrProposalNotFound):
		return http.StatusNotFound
	case errors.Is(err, gov.ErrProposalNotActive),
		errors.Is(err, gov.ErrProposalExpired),
		errors.Is(err, gov.ErrAlreadyVoted),
		errors.Is(err, gov.ErrVoteCountOverflow):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (h Proposals) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,max=100"`
		Description string `json:"description" binding:"required,max=200"`
		Deadline    int64  `json:"deadline" binding:"required"`
		DetailsHash string `json:"detailsHash"`
		Details     string `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	title := h.sanitizer.Sanitize(req.Title)
	description := h.sanitizer.Sanitize(req.Description)
	if !utf8.ValidString(title) || !utf8.ValidString(description) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}

	// The fingerprint either arrives precomputed or is derived from the
	// supplied details body.
	var hash gov.DetailsHash
	switch {
	case req.DetailsHash != "":
		var err error
		hash, err = gov.ParseDetailsHash(req.DetailsHash)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
			return
		}
	case req.Details != "":
		hash = gov.DetailsHash(blake2b.Sum256([]byte(req.Details)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"err": "details or detailsHash required"})
		return
	}

	author := c.GetString("addr")
	now := time.Now()
	id, err := h.store.CreateProposal(author, title, description, hash, time.Unix(req.Deadline, 0), now)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h Proposals) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.store.Proposal(id)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, renderProposal(p, time.Now()))
}

func pagingParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	return offset, limit
}

// List serves GET /proposals with optional status (all|open|closed) and
// author filters. Bad paging parameters degrade to defaults, never errors.
func (h Proposals) List(c *gin.Context) {
	h.list(c, c.Query("author"))
}

// ByAuthor serves GET /authors/:addr/proposals.
func (h Proposals) ByAuthor(c *gin.Context) {
	h.list(c, c.Param("addr"))
}

func (h Proposals) list(c *gin.Context, author string) {
	offset, limit := pagingParams(c)
	now := time.Now()

	var page []gov.Proposal
	var total uint64
	switch status := c.DefaultQuery("status", "all"); status {
	case "all":
		if author == "" {
			page = h.store.Proposals(offset, limit)
			total = h.store.TotalCount()
		} else {
			page = h.store.ProposalsByAuthor(author, offset, limit)
			total = h.store.CountByAuthor(author)
		}
	case "open":
		if author == "" {
			page = h.store.OpenProposals(offset, limit, now)
			total = h.store.CountOpen(now)
		} else {
			page = h.store.OpenProposalsByAuthor(author, offset, limit, now)
			total = h.store.CountOpenByAuthor(author, now)
		}
	case "closed":
		if author == "" {
			page = h.store.ClosedProposals(offset, limit, now)
			total = h.store.CountClosed(now)
		} else {
			page = h.store.ClosedProposalsByAuthor(author, offset, limit, now)
			total = h.store.CountClosedByAuthor(author, now)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"err": "status must be all, open or closed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": renderProposals(page, now), "total": total})
}

// Count serves GET /proposals/count with the same filters as List.
func (h Proposals) Count(c *gin.Context) {
	now := time.Now()
	author := c.Query("author")

	var total uint64
	switch status := c.DefaultQuery("status", "all"); status {
	case "all":
		if author == "" {
			total = h.store.TotalCount()
		} else {
			total = h.store.CountByAuthor(author)
		}
	case "open":
		if author == "" {
			total = h.store.CountOpen(now)
		} else {
			total = h.store.CountOpenByAuthor(author, now)
		}
	case "closed":
		if author == "" {
			total = h.store.CountClosed(now)
		} else {
			total = h.store.CountClosedByAuthor(author, now)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"err": "status must be all, open or closed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

// AuthorCount serves GET /authors/:addr/count.
func (h Proposals) AuthorCount(c *gin.Context) {
	addr := c.Param("addr")
	c.JSON(http.StatusOK, gin.H{
		"total": h.store.CountByAuthor(addr),
		"ids":   h.store.IDsByAuthor(addr),
	})
}
