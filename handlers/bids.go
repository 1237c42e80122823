package handlers

import (
	"context"
	"net/http"
	"strings"

	"freelancehub/models"
	"freelancehub/services/bidding"
	"freelancehub/services/errs"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// BidHandler serves the bid lifecycle.
type BidHandler struct {
	Bids bidding.BiddingService
}

func NewBidHandler(svc bidding.BiddingService) *BidHandler {
	return &BidHandler{Bids: svc}
}

type bidAction func(ctx context.Context, actor models.Identity, bidID string) (*models.Bid, error)

// respondBidAction runs a lifecycle event against the :id bid.
func respondBidAction(c *gin.Context, action bidAction) {
	actor, ok := requireIdentity(c)
	if !ok {
		return
	}
	bid, err := action(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}

func (h *BidHandler) SubmitBidHandler(c *gin.Context) {
	freelancer, ok := requireIdentity(c)
	if !ok {
		return
	}
	var terms models.BidTerms
	if !bindJSON(c, &terms) {
		return
	}
	bid, err := h.Bids.SubmitBid(c.Request.Context(), freelancer, c.Param("id"), terms)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

func (h *BidHandler) ListProjectBidsHandler(c *gin.Context) {
	client, ok := requireIdentity(c)
	if !ok {
		return
	}
	bids, err := h.Bids.ListProjectBids(c.Request.Context(), client, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (h *BidHandler) AcceptBidHandler(c *gin.Context) {
	respondBidAction(c, h.Bids.Accept)
}

func (h *BidHandler) RejectBidHandler(c *gin.Context) {
	respondBidAction(c, h.Bids.Reject)
}

// ListFreelancerBidsHandler returns one tab (query tab or status) with stats.
func (h *BidHandler) ListFreelancerBidsHandler(c *gin.Context) {
	freelancer, ok := requireIdentity(c)
	if !ok {
		return
	}
	tab := c.DefaultQuery("tab", c.Query("status"))
	listing, err := h.Bids.ListFreelancerBids(c.Request.Context(), freelancer, tab)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// updateBidRequest withdraws when status is "withdrawn", otherwise edits the
// terms of a pending bid.
type updateBidRequest struct {
	Status string `json:"status"`
	models.BidTerms
}

func (h *BidHandler) UpdateFreelancerBidHandler(c *gin.Context) {
	freelancer, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req updateBidRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		bid *models.Bid
		err error
	)
	switch status := models.BidStatus(strings.ToLower(strings.TrimSpace(req.Status))); status {
	case models.BidWithdrawn:
		bid, err = h.Bids.Withdraw(c.Request.Context(), freelancer, c.Param("id"))
	case "", models.BidPending:
		bid, err = h.Bids.EditBid(c.Request.Context(), freelancer, c.Param("id"), req.BidTerms)
	default:
		err = errs.Validation("UpdateBid", "freelancers can only withdraw bids, not mark them %s", status)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}
