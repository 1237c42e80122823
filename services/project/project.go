package project

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
	"freelancehub/services/errs"
	"freelancehub/services/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateProjectCommand struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	Budget      float64    `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
}

func (s *DefaultProjectService) CreateProject(ctx context.Context, client models.Identity, cmd CreateProjectCommand) (*ProjectView, error) {
	const op = "CreateProject"
	if client.Role != models.RoleClient {
		return nil, errs.Forbidden(op, "only clients can post projects")
	}
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, errs.Validation(op, "title is required")
	}
	if math.IsNaN(cmd.Budget) || math.IsInf(cmd.Budget, 0) || cmd.Budget < 0 {
		return nil, errs.Validation(op, "budget must be a non-negative number")
	}
	var deadline *time.Time
	if cmd.Deadline != nil && !cmd.Deadline.IsZero() {
		d := cmd.Deadline.UTC()
		deadline = &d
	}

	now := s.Now().UTC()
	p := &models.Project{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		ClientName:  client.Name,
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Skills:      profile.NormalizeSkills(cmd.Skills),
		Budget:      cmd.Budget,
		Deadline:    deadline,
		Status:      models.ProjectOpen,
		Milestones:  []models.Milestone{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, errs.Upstream(op, err)
	}
	s.Logger.Info("Project created", zap.String("projectId", p.ID), zap.String("clientId", client.ID))
	v := NewProjectView(*p, s.Now())
	return &v, nil
}

func (s *DefaultProjectService) GetProject(ctx context.Context, projectID string) (*ProjectView, error) {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errs.FromStore("GetProject", err, "project")
	}
	v := NewProjectView(*p, s.Now())
	return &v, nil
}

func (s *DefaultProjectService) views(projects []models.Project) []ProjectView {
	now := s.Now()
	out := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectView(p, now))
	}
	return out
}

func (s *DefaultProjectService) ListClientProjects(ctx context.Context, client models.Identity) ([]ProjectView, error) {
	if client.Role != models.RoleClient {
		return nil, errs.Forbidden("ListClientProjects", "only clients own projects")
	}
	projects, err := s.Projects.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, errs.Upstream("ListClientProjects", err)
	}
	return s.views(projects), nil
}

// ListFreelancerProjects lists projects assigned to the freelancer. "active"
// is accepted as an alias of in-progress.
func (s *DefaultProjectService) ListFreelancerProjects(ctx context.Context, freelancer models.Identity, status string) ([]ProjectView, error) {
	const op = "ListFreelancerProjects"
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden(op, "only freelancers are assigned projects")
	}
	var filter models.ProjectStatus
	switch st := strings.ToLower(strings.TrimSpace(status)); st {
	case "", "all":
	case "active":
		filter = models.ProjectInProgress
	default:
		if !models.ProjectStatus(st).Valid() {
			return nil, errs.Validation(op, "unknown status %q", status)
		}
		filter = models.ProjectStatus(st)
	}
	projects, err := s.Projects.ListByFreelancer(ctx, freelancer.ID, filter)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}
	return s.views(projects), nil
}

func (s *DefaultProjectService) ListOpenProjects(ctx context.Context) ([]ProjectView, error) {
	projects, err := s.Projects.ListOpen(ctx)
	if err != nil {
		return nil, errs.Upstream("ListOpenProjects", err)
	}
	return s.views(projects), nil
}

// UpdateProjectStatus only allows in-progress to completed. Projects enter
// in-progress by accepting a bid.
func (s *DefaultProjectService) UpdateProjectStatus(ctx context.Context, actor models.Identity, projectID, status string) (*ProjectView, error) {
	const op = "UpdateProjectStatus"
	target := models.ProjectStatus(strings.ToLower(strings.TrimSpace(status)))
	if target == "active" {
		target = models.ProjectInProgress
	}
	if !target.Valid() {
		return nil, errs.Validation(op, "unknown status %q", status)
	}
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	if !p.IsParticipant(actor) {
		return nil, errs.Forbidden(op, "only the project's client or assigned freelancer can change its status")
	}
	if p.Status != models.ProjectInProgress || target != models.ProjectCompleted {
		return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "cannot move a project from %s to %s", p.Status, target)
	}
	if err := s.Projects.SetStatus(ctx, p.ID, p.Status, target); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "project status changed concurrently")
		}
		return nil, errs.FromStore(op, err, "project")
	}
	s.Logger.Info("Project status changed",
		zap.String("projectId", p.ID), zap.String("from", string(p.Status)), zap.String("to", string(target)))
	return s.GetProject(ctx, p.ID)
}
