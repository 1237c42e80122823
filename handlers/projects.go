package handlers

import (
	"net/http"

	"freelancehub/services/project"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// ProjectHandler serves projects and their milestones.
type ProjectHandler struct {
	Projects project.ProjectService
}

func NewProjectHandler(svc project.ProjectService) *ProjectHandler {
	return &ProjectHandler{Projects: svc}
}

type createProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Budget      float64  `json:"budget"`
	Deadline    string   `json:"deadline"`
}

func (h *ProjectHandler) CreateProjectHandler(c *gin.Context) {
	client, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req createProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	cmd := project.CreateProjectCommand{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Budget:      req.Budget,
	}
	if !deadline.IsZero() {
		cmd.Deadline = &deadline
	}
	view, err := h.Projects.CreateProject(c.Request.Context(), client, cmd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *ProjectHandler) ListOpenProjectsHandler(c *gin.Context) {
	views, err := h.Projects.ListOpenProjects(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProjectHandler) ListClientProjectsHandler(c *gin.Context) {
	client, ok := requireIdentity(c)
	if !ok {
		return
	}
	views, err := h.Projects.ListClientProjects(c.Request.Context(), client)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProjectHandler) ListFreelancerProjectsHandler(c *gin.Context) {
	freelancer, ok := requireIdentity(c)
	if !ok {
		return
	}
	views, err := h.Projects.ListFreelancerProjects(c.Request.Context(), freelancer, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProjectHandler) GetProjectHandler(c *gin.Context) {
	view, err := h.Projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProjectHandler) UpdateProjectStatusHandler(c *gin.Context) {
	actor, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.Projects.UpdateProjectStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProjectHandler) ListMilestonesHandler(c *gin.Context) {
	actor, ok := requireIdentity(c)
	if !ok {
		return
	}
	milestones, err := h.Projects.ListMilestones(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}

func (h *ProjectHandler) AddMilestoneHandler(c *gin.Context) {
	actor, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
	}
	if !bindJSON(c, &req) {
		return
	}
	due, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	m, err := h.Projects.AddMilestone(c.Request.Context(), actor, c.Param("id"), project.MilestoneCommand{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *ProjectHandler) ToggleMilestoneHandler(c *gin.Context) {
	actor, ok := requireIdentity(c)
	if !ok {
		return
	}
	m, err := h.Projects.ToggleMilestone(c.Request.Context(), actor, c.Param("id"), c.Param("milestoneId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
