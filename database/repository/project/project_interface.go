package projectRepo

import (
	"context"

	"freelancehub/models"
)

// ProjectRepository defines methods for project data access. Conditional
// writes report repository.ErrStale when the stored state no longer matches.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Project, error)
	// ListByFreelancer returns projects assigned to the freelancer. An empty
	// status returns all of them.
	ListByFreelancer(ctx context.Context, freelancerID string, status models.ProjectStatus) ([]models.Project, error)
	ListOpen(ctx context.Context) ([]models.Project, error)
	// Assign moves an open project to in-progress for the accepted bid.
	Assign(ctx context.Context, projectID, freelancerID, bidID string) error
	SetStatus(ctx context.Context, projectID string, from, to models.ProjectStatus) error
	AppendMilestone(ctx context.Context, projectID string, milestone models.Milestone) error
	// SetMilestoneCompleted writes completed only if the stored flag equals expected.
	SetMilestoneCompleted(ctx context.Context, projectID, milestoneID string, expected, completed bool) error
}

// BidRepository defines methods for bid data access.
type BidRepository interface {
	// Create yields repository.ErrDuplicate if the freelancer already has a
	// pending bid on the project.
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id string) (*models.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Bid, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Bid, error)
	// CompareAndSetStatus moves a bid from one status to another. A second
	// accepted bid on the same project yields repository.ErrDuplicate.
	CompareAndSetStatus(ctx context.Context, id string, from, to models.BidStatus) error
	// UpdateTerms edits a bid that is still pending.
	UpdateTerms(ctx context.Context, id string, terms models.BidTerms) error
	// RejectPendingSiblings rejects every other pending bid on the project.
	RejectPendingSiblings(ctx context.Context, projectID, keepBidID string) (int64, error)
}
