package ledgerRepo

import (
	"context"

	"freelancehub/models"
)

// HireRepository stores hire records, unique per (client, freelancer).
type HireRepository interface {
	// Insert yields repository.ErrDuplicate when the pair already exists.
	Insert(ctx context.Context, record *models.HireRecord) error
	Get(ctx context.Context, clientID, freelancerID string) (*models.HireRecord, error)
	Delete(ctx context.Context, id string) error
	ListByClient(ctx context.Context, clientID string) ([]models.HireRecord, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]models.HireRecord, error)
}

// RatingRepository stores ratings, unique per (client, freelancer).
type RatingRepository interface {
	// Insert yields repository.ErrDuplicate when the pair already exists.
	Insert(ctx context.Context, rating *models.Rating) error
	Get(ctx context.Context, clientID, freelancerID string) (*models.Rating, error)
	Delete(ctx context.Context, id string) error
	ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Rating, error)
	// Aggregate computes the mean and count over the freelancer's ratings.
	Aggregate(ctx context.Context, freelancerID string) (models.RatingAggregate, error)
}
