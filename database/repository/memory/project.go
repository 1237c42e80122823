package memoryRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
)

type ProjectRepo struct {
	mu       sync.RWMutex
	projects map[string]models.Project
}

func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{projects: map[string]models.Project{}}
}

func (r *ProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; ok {
		return fmt.Errorf("project %s: %w", project.ID, repository.ErrDuplicate)
	}
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	p = cloneProject(p)
	return &p, nil
}

func (r *ProjectRepo) filter(keep func(models.Project) bool) []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Project{}
	for _, p := range r.projects {
		if keep(p) {
			out = append(out, cloneProject(p))
		}
	}
	newestFirst(out, func(p models.Project) time.Time { return p.CreatedAt })
	return out
}

func (r *ProjectRepo) ListByClient(_ context.Context, clientID string) ([]models.Project, error) {
	return r.filter(func(p models.Project) bool { return p.ClientID == clientID }), nil
}

func (r *ProjectRepo) ListByFreelancer(_ context.Context, freelancerID string, status models.ProjectStatus) ([]models.Project, error) {
	return r.filter(func(p models.Project) bool {
		return p.FreelancerID == freelancerID && (status == "" || p.Status == status)
	}), nil
}

func (r *ProjectRepo) ListOpen(_ context.Context) ([]models.Project, error) {
	return r.filter(func(p models.Project) bool { return p.Status == models.ProjectOpen }), nil
}

// conditional applies fn when cond holds, mirroring a filtered UpdateOne.
func (r *ProjectRepo) conditional(id string, cond func(models.Project) bool, fn func(*models.Project)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	if cond != nil && !cond(p) {
		return fmt.Errorf("project %s: %w", id, repository.ErrStale)
	}
	p = cloneProject(p)
	fn(&p)
	p.UpdatedAt = now()
	r.projects[id] = p
	return nil
}

func (r *ProjectRepo) Assign(_ context.Context, projectID, freelancerID, bidID string) error {
	return r.conditional(projectID,
		func(p models.Project) bool { return p.Status == models.ProjectOpen },
		func(p *models.Project) {
			p.Status = models.ProjectInProgress
			p.FreelancerID = freelancerID
			p.AcceptedBidID = bidID
		})
}

func (r *ProjectRepo) SetStatus(_ context.Context, projectID string, from, to models.ProjectStatus) error {
	return r.conditional(projectID,
		func(p models.Project) bool { return p.Status == from },
		func(p *models.Project) { p.Status = to })
}

func (r *ProjectRepo) AppendMilestone(_ context.Context, projectID string, milestone models.Milestone) error {
	return r.conditional(projectID, nil, func(p *models.Project) {
		p.Milestones = append(p.Milestones, milestone)
	})
}

func (r *ProjectRepo) SetMilestoneCompleted(_ context.Context, projectID, milestoneID string, expected, completed bool) error {
	return r.conditional(projectID,
		func(p models.Project) bool {
			m, ok := p.Milestone(milestoneID)
			return ok && m.Completed == expected
		},
		func(p *models.Project) {
			for i := range p.Milestones {
				if p.Milestones[i].ID == milestoneID {
					p.Milestones[i].Completed = completed
				}
			}
		})
}
