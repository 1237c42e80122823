package profileRepo

import (
	"context"

	"freelancehub/models"
)

// SearchCriteria filters the freelancer directory. Zero values disable a filter.
type SearchCriteria struct {
	Term         string              // Case-insensitive substring over name and skills.
	Skills       []string            // Every listed skill must be present, case-insensitive.
	MinRating    float64             // Stored mean must be at least this.
	MaxRate      *float64            // Hourly rate ceiling.
	Availability models.Availability // Empty means any.
}

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	// Create inserts a profile. A second profile for the same freelancer
	// yields repository.ErrDuplicate.
	Create(ctx context.Context, profile *models.Profile) error
	GetByFreelancerID(ctx context.Context, freelancerID string) (*models.Profile, error)
	// GetByName resolves a freelancer by display name, case-insensitively.
	GetByName(ctx context.Context, name string) (*models.Profile, error)
	// Search returns matches sorted by rating descending, then name.
	Search(ctx context.Context, criteria SearchCriteria) ([]models.Profile, error)
	// UpdateDetails overwrites the owner-editable fields only.
	UpdateDetails(ctx context.Context, freelancerID string, details models.ProfileDetails) error
	// AddHiredBy adds clientID to hiredBy with set semantics.
	AddHiredBy(ctx context.Context, freelancerID, clientID string) error
	// SetRating stores agg unless the profile already holds an aggregate
	// over more ratings, in which case it returns repository.ErrStale.
	SetRating(ctx context.Context, freelancerID string, agg models.RatingAggregate) error
	// ResetRating stores agg unconditionally. Reconciliation uses it.
	ResetRating(ctx context.Context, freelancerID string, agg models.RatingAggregate) error
}
