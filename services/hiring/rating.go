package hiring

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

const (
	MinRatingValue = 1.0
	MaxRatingValue = 5.0
)

// ValidateRating checks the value range and the comment before any write.
func ValidateRating(value float64, comment string) error {
	const op = "Rate"
	if math.IsNaN(value) || math.IsInf(value, 0) || value < MinRatingValue || value > MaxRatingValue {
		return errs.Validation(op, "rating must be between %g and %g", MinRatingValue, MaxRatingValue)
	}
	if strings.TrimSpace(comment) == "" {
		return errs.Validation(op, "comment is required")
	}
	return nil
}

// Rate stores one rating per (client, freelancer) and refreshes the profile's
// mean. A second rating from the same client is rejected.
func (s *DefaultHiringService) Rate(ctx context.Context, client models.Identity, cmd RateCommand) (*RateResult, error) {
	const op = "Rate"
	if client.Role != models.RoleClient {
		return nil, errs.Forbidden(op, "only clients can rate freelancers")
	}
	if err := ValidateRating(cmd.Value, cmd.Comment); err != nil {
		return nil, err
	}
	freelancer, err := s.resolveFreelancer(ctx, op, cmd.Freelancer)
	if err != nil {
		return nil, err
	}

	_, err = s.Ratings.Get(ctx, client.ID, freelancer.FreelancerID)
	switch {
	case err == nil:
		return nil, errs.Conflict(op, errs.ReasonDuplicateRating, "you have already rated %s", displayName(freelancer))
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errs.Upstream(op, err)
	}

	rating := models.Rating{
		ID:           uuid.New().String(),
		ClientID:     client.ID,
		ClientName:   client.Name,
		FreelancerID: freelancer.FreelancerID,
		Value:        cmd.Value,
		Comment:      strings.TrimSpace(cmd.Comment),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Ratings.Insert(ctx, &rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict(op, errs.ReasonDuplicateRating, "you have already rated %s", displayName(freelancer))
		}
		return nil, errs.Upstream(op, err)
	}

	agg, err := s.refreshAggregate(ctx, freelancer.FreelancerID)
	if err != nil {
		if delErr := s.Ratings.Delete(ctx, rating.ID); delErr != nil {
			s.Logger.Error("Failed to roll back rating",
				zap.String("ratingId", rating.ID), zap.Error(delErr))
		}
		return nil, errs.Upstream(op, err)
	}

	s.scheduleReconcile(ctx, freelancer.FreelancerID)
	s.Logger.Info("Freelancer rated",
		zap.String("clientId", client.ID),
		zap.String("freelancerId", freelancer.FreelancerID),
		zap.Float64("mean", agg.Mean))

	return &RateResult{
		Rating:        rating,
		Aggregate:     agg,
		DisplayRating: profile.DisplayRating(agg.Mean),
	}, nil
}

// refreshAggregate recomputes the mean from the ledger and stores it. When a
// concurrent rating already stored an aggregate over more ratings, that one
// is kept and returned.
func (s *DefaultHiringService) refreshAggregate(ctx context.Context, freelancerID string) (models.RatingAggregate, error) {
	agg, err := s.Ratings.Aggregate(ctx, freelancerID)
	if err != nil {
		return models.RatingAggregate{}, err
	}
	err = s.Profiles.SetRating(ctx, freelancerID, agg)
	if err == nil {
		return agg, nil
	}
	if !errors.Is(err, repository.ErrStale) {
		return models.RatingAggregate{}, err
	}
	stored, err := s.Profiles.GetByFreelancerID(ctx, freelancerID)
	if err != nil {
		return models.RatingAggregate{}, err
	}
	return models.RatingAggregate{Mean: stored.Rating, Count: stored.RatingCount}, nil
}

// scheduleReconcile asks the worker to recompute later.
func (s *DefaultHiringService) scheduleReconcile(ctx context.Context, freelancerID string) {
	if s.Tasks == nil {
		return
	}
	if err := s.Tasks.EnqueueRatingReconcile(ctx, freelancerID); err != nil {
		s.Logger.Warn("Failed to schedule rating reconcile",
			zap.String("freelancerId", freelancerID), zap.Error(err))
	}
}

// ReconcileRating is run by the worker. It overwrites the stored aggregate,
// so it also repairs counts left too high by a rolled back rating.
func (s *DefaultHiringService) ReconcileRating(ctx context.Context, freelancerID string) error {
	const op = "ReconcileRating"
	agg, err := s.Ratings.Aggregate(ctx, freelancerID)
	if err != nil {
		return errs.Upstream(op, err)
	}
	if err := s.Profiles.ResetRating(ctx, freelancerID, agg); err != nil {
		return errs.FromStore(op, err, "freelancer")
	}
	s.Logger.Debug("Rating reconciled",
		zap.String("freelancerId", freelancerID), zap.Float64("mean", agg.Mean), zap.Int("count", agg.Count))
	return nil
}

func (s *DefaultHiringService) ListRatings(ctx context.Context, freelancerID string) ([]models.Rating, error) {
	const op = "ListRatings"
	if _, err := s.Profiles.GetByFreelancerID(ctx, freelancerID); err != nil {
		return nil, errs.FromStore(op, err, "freelancer")
	}
	ratings, err := s.Ratings.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}
	return ratings, nil
}
