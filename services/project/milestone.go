package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
	"freelancehub/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MilestoneCommand struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

// participantProject loads the project and checks the actor may see its
// milestones.
func (s *DefaultProjectService) participantProject(ctx context.Context, op string, actor models.Identity, projectID string) (*models.Project, error) {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	if !p.IsParticipant(actor) && actor.Role != models.RoleAdmin {
		return nil, errs.Forbidden(op, "only project participants can access milestones")
	}
	return p, nil
}

func (s *DefaultProjectService) ListMilestones(ctx context.Context, actor models.Identity, projectID string) ([]MilestoneView, error) {
	p, err := s.participantProject(ctx, "ListMilestones", actor, projectID)
	if err != nil {
		return nil, err
	}
	return NewProjectView(*p, s.Now()).Milestones, nil
}

func (s *DefaultProjectService) AddMilestone(ctx context.Context, actor models.Identity, projectID string, cmd MilestoneCommand) (*MilestoneView, error) {
	const op = "AddMilestone"
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, errs.Validation(op, "title is required")
	}
	if cmd.DueDate.IsZero() {
		return nil, errs.Validation(op, "dueDate is required")
	}
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	if !p.IsParticipant(actor) {
		return nil, errs.Forbidden(op, "only project participants can add milestones")
	}

	m := models.Milestone{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		DueDate:     cmd.DueDate.UTC(),
		CreatedAt:   s.Now().UTC(),
	}
	if err := s.Projects.AppendMilestone(ctx, p.ID, m); err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	s.Logger.Info("Milestone added", zap.String("projectId", p.ID), zap.String("milestoneId", m.ID))
	v := newMilestoneView(m, s.Now())
	return &v, nil
}

// ToggleMilestone flips completion. A concurrent flip is retried once against
// fresh state.
func (s *DefaultProjectService) ToggleMilestone(ctx context.Context, actor models.Identity, projectID, milestoneID string) (*MilestoneView, error) {
	const op = "ToggleMilestone"
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.Projects.GetByID(ctx, projectID)
		if err != nil {
			return nil, errs.FromStore(op, err, "project")
		}
		if !p.IsParticipant(actor) {
			return nil, errs.Forbidden(op, "only project participants can update milestones")
		}
		m, ok := p.Milestone(milestoneID)
		if !ok {
			return nil, errs.NotFound(op, "milestone not found")
		}

		err = s.Projects.SetMilestoneCompleted(ctx, p.ID, m.ID, m.Completed, !m.Completed)
		if errors.Is(err, repository.ErrStale) {
			s.Logger.Debug("Milestone changed concurrently, retrying", zap.String("milestoneId", m.ID))
			continue
		}
		if err != nil {
			return nil, errs.FromStore(op, err, "project")
		}
		m.Completed = !m.Completed
		v := newMilestoneView(m, s.Now())
		return &v, nil
	}
	return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "milestone changed concurrently")
}
