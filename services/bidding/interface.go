package bidding

import (
	"context"
	"fmt"

	projectRepo "freelancehub/database/repository/project"
	"freelancehub/cron"
	"freelancehub/models"

	"go.uber.org/zap"
)

// BiddingService runs the bid lifecycle: pending, then exactly one of
// accepted, rejected or withdrawn.
type BiddingService interface {
	SubmitBid(ctx context.Context, freelancer models.Identity, projectID string, terms models.BidTerms) (*models.Bid, error)
	EditBid(ctx context.Context, freelancer models.Identity, bidID string, terms models.BidTerms) (*models.Bid, error)
	Accept(ctx context.Context, client models.Identity, bidID string) (*models.Bid, error)
	Reject(ctx context.Context, client models.Identity, bidID string) (*models.Bid, error)
	Withdraw(ctx context.Context, freelancer models.Identity, bidID string) (*models.Bid, error)
	ListFreelancerBids(ctx context.Context, freelancer models.Identity, tab string) (*BidListing, error)
	ListProjectBids(ctx context.Context, client models.Identity, projectID string) ([]models.Bid, error)
	RejectSiblings(ctx context.Context, projectID, acceptedBidID string) error
}

// BidListing is one tab of a freelancer's bids. Stats always cover every bid.
type BidListing struct {
	Tab   string       `json:"tab"`
	Bids  []models.Bid `json:"bids"`
	Stats Stats        `json:"stats"`
}

// DefaultBiddingService is the production implementation.
type DefaultBiddingService struct {
	Projects projectRepo.ProjectRepository
	Bids     projectRepo.BidRepository
	Tasks    cron.Dispatcher // Optional.
	Logger   *zap.Logger
}

func NewDefaultBiddingService(
	projects projectRepo.ProjectRepository,
	bids projectRepo.BidRepository,
	tasks cron.Dispatcher,
	logger *zap.Logger,
) (*DefaultBiddingService, error) {
	if projects == nil || bids == nil {
		return nil, fmt.Errorf("bidding service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBiddingService{Projects: projects, Bids: bids, Tasks: tasks, Logger: logger}, nil
}
