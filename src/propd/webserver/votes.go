package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quorumdao/govproposals/src/shared/gov"
)

type Votes struct {
	store *gov.Store
}

func NewVotes(store *gov.Store) Votes {
	return Votes{store: store}
}

func (v Votes) Cast(c *gin.Context) {
	var req struct {
		ProposalID uint64 `json:"proposalId" binding:"required"`
		Choice     string `json:"choice" binding:"required,oneof=yes no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	voter := c.GetString("addr")
	if err := v.store.CastVote(req.ProposalID, voter, req.Choice == "yes", time.Now()); err != nil {
		c.JSON(errStatus(err), gin.H{"err": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

// MyVote returns the caller's recorded choice on a proposal.
func (v Votes) MyVote(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	voter := c.GetString("addr")

	choice, err := v.store.Vote(id, voter)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
		return
	}

	out := "no"
	if choice {
		out = "yes"
	}
	c.JSON(http.StatusOK, gin.H{"choice": out})
}

// Status reports whether a voter has voted; defaults to the caller, or any
// voter via the voter query parameter. Never errors for unknown proposals.
func (v Votes) Status(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	voter := c.DefaultQuery("voter", c.GetString("addr"))
	c.JSON(http.StatusOK, gin.H{"hasVoted": v.store.HasVoted(id, voter)})
}
