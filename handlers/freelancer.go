package handlers

import (
	"net/http"
	"strings"

	"freelancehub/services/hiring"
	"freelancehub/services/profile"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// FreelancerHandler serves profiles and the freelancer directory.
type FreelancerHandler struct {
	Profiles profile.ProfileService
	Hiring   hiring.HiringService
}

func NewFreelancerHandler(profiles profile.ProfileService, hiringSvc hiring.HiringService) *FreelancerHandler {
	return &FreelancerHandler{Profiles: profiles, Hiring: hiringSvc}
}

// SearchHandler filters the directory. Query: q (or search), skills,
// minRating, maxRate, availability.
func (h *FreelancerHandler) SearchHandler(c *gin.Context) {
	viewer, ok := requireIdentity(c)
	if !ok {
		return
	}
	minRating, err := queryFloat(c, "minRating")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	maxRate, err := queryFloat(c, "maxRate")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	query := profile.SearchQuery{
		Term:         strings.TrimSpace(c.DefaultQuery("q", c.Query("search"))),
		Skills:       splitList(c.QueryArray("skills")),
		MaxRate:      maxRate,
		Availability: c.Query("availability"),
	}
	if minRating != nil {
		query.MinRating = *minRating
	}

	results, err := h.Profiles.SearchFreelancers(c.Request.Context(), query, viewer)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *FreelancerHandler) GetOwnProfileHandler(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	view, err := h.Profiles.GetOwnProfile(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FreelancerHandler) UpdateProfileHandler(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var cmd profile.UpdateProfileCommand
	if !bindJSON(c, &cmd) {
		return
	}
	view, err := h.Profiles.UpdateProfile(c.Request.Context(), id, cmd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FreelancerHandler) GetProfileHandler(c *gin.Context) {
	viewer, ok := requireIdentity(c)
	if !ok {
		return
	}
	view, err := h.Profiles.GetProfile(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FreelancerHandler) ListRatingsHandler(c *gin.Context) {
	ratings, err := h.Hiring.ListRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}
