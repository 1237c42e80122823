package hiring

import (
	"context"
	"fmt"

	ledgerRepo "freelancehub/database/repository/ledger"
	profileRepo "freelancehub/database/repository/profile"
	"freelancehub/cron"
	"freelancehub/models"

	"go.uber.org/zap"
)

// HiringService maintains the hire and rating ledgers and the profile fields
// derived from them.
type HiringService interface {
	Hire(ctx context.Context, client models.Identity, target FreelancerRef) (*HireResult, error)
	ListHires(ctx context.Context, client models.Identity) ([]models.HireRecord, error)
	Rate(ctx context.Context, client models.Identity, cmd RateCommand) (*RateResult, error)
	ListRatings(ctx context.Context, freelancerID string) ([]models.Rating, error)
	ReconcileRating(ctx context.Context, freelancerID string) error
}

// FreelancerRef names a freelancer by id or, failing that, by display name.
type FreelancerRef struct {
	ID   string
	Name string
}

type HireResult struct {
	Hired          bool               `json:"hired"`
	FreelancerID   string             `json:"freelancerId"`
	FreelancerName string             `json:"freelancerName"`
	Record         *models.HireRecord `json:"record"`
}

// RateCommand is a rating submission. Value accepts integers and reals.
type RateCommand struct {
	Freelancer FreelancerRef
	Value      float64
	Comment    string
}

type RateResult struct {
	Rating        models.Rating          `json:"rating"`
	Aggregate     models.RatingAggregate `json:"aggregate"`
	DisplayRating float64                `json:"displayRating"`
}

// DefaultHiringService is the production implementation.
type DefaultHiringService struct {
	Profiles profileRepo.ProfileRepository
	Hires    ledgerRepo.HireRepository
	Ratings  ledgerRepo.RatingRepository
	Tasks    cron.Dispatcher // Optional.
	Logger   *zap.Logger
}

func NewDefaultHiringService(
	profiles profileRepo.ProfileRepository,
	hires ledgerRepo.HireRepository,
	ratings ledgerRepo.RatingRepository,
	tasks cron.Dispatcher,
	logger *zap.Logger,
) (*DefaultHiringService, error) {
	if profiles == nil || hires == nil || ratings == nil {
		return nil, fmt.Errorf("hiring service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultHiringService{
		Profiles: profiles,
		Hires:    hires,
		Ratings:  ratings,
		Tasks:    tasks,
		Logger:   logger,
	}, nil
}
