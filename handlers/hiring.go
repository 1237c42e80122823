package handlers

import (
	"net/http"

	"freelancehub/services/errs"
	"freelancehub/services/hiring"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// HiringHandler serves hires and ratings.
type HiringHandler struct {
	Hiring hiring.HiringService
}

func NewHiringHandler(svc hiring.HiringService) *HiringHandler {
	return &HiringHandler{Hiring: svc}
}

// hireRequest names the freelancer by id or display name. clientName is
// accepted from older clients but the caller's identity is authoritative.
type hireRequest struct {
	FreelancerID   string `json:"freelancerId"`
	FreelancerName string `json:"freelancerName"`
	ClientName     string `json:"clientName"`
}

func (h *HiringHandler) HireHandler(c *gin.Context) {
	client, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req hireRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.Hiring.Hire(c.Request.Context(), client, hiring.FreelancerRef{ID: req.FreelancerID, Name: req.FreelancerName})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *HiringHandler) ListHiresHandler(c *gin.Context) {
	client, ok := requireIdentity(c)
	if !ok {
		return
	}
	hires, err := h.Hiring.ListHires(c.Request.Context(), client)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hires)
}

// rateRequest takes the score as value or, for older clients, rating.
type rateRequest struct {
	FreelancerID   string   `json:"freelancerId"`
	FreelancerName string   `json:"freelancerName"`
	Value          *float64 `json:"value"`
	Rating         *float64 `json:"rating"`
	Comment        string   `json:"comment"`
}

func (h *HiringHandler) RateHandler(c *gin.Context) {
	client, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req rateRequest
	if !bindJSON(c, &req) {
		return
	}
	value := req.Value
	if value == nil {
		value = req.Rating
	}
	if value == nil {
		utils.RespondError(c, errs.Validation("Rate", "value is required"))
		return
	}
	result, err := h.Hiring.Rate(c.Request.Context(), client, hiring.RateCommand{
		Freelancer: hiring.FreelancerRef{ID: req.FreelancerID, Name: req.FreelancerName},
		Value:      *value,
		Comment:    req.Comment,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
