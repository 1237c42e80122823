package project

import (
	"context"
	"fmt"
	"time"

	projectRepo "freelancehub/database/repository/project"
	"freelancehub/models"

	"go.uber.org/zap"
)

// ProjectService covers posting projects, their status and milestones.
type ProjectService interface {
	CreateProject(ctx context.Context, client models.Identity, cmd CreateProjectCommand) (*ProjectView, error)
	GetProject(ctx context.Context, projectID string) (*ProjectView, error)
	ListClientProjects(ctx context.Context, client models.Identity) ([]ProjectView, error)
	ListFreelancerProjects(ctx context.Context, freelancer models.Identity, status string) ([]ProjectView, error)
	ListOpenProjects(ctx context.Context) ([]ProjectView, error)
	UpdateProjectStatus(ctx context.Context, actor models.Identity, projectID, status string) (*ProjectView, error)
	ListMilestones(ctx context.Context, actor models.Identity, projectID string) ([]MilestoneView, error)
	AddMilestone(ctx context.Context, actor models.Identity, projectID string, cmd MilestoneCommand) (*MilestoneView, error)
	ToggleMilestone(ctx context.Context, actor models.Identity, projectID, milestoneID string) (*MilestoneView, error)
}

// DefaultProjectService is the production implementation.
type DefaultProjectService struct {
	Projects projectRepo.ProjectRepository
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultProjectService(projects projectRepo.ProjectRepository, logger *zap.Logger) (*DefaultProjectService, error) {
	if projects == nil {
		return nil, fmt.Errorf("project service initialization error: project repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultProjectService{Projects: projects, Logger: logger, Now: time.Now}, nil
}
