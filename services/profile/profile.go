package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"freelancehub/database/repository"
	profileRepo "freelancehub/database/repository/profile"
	"freelancehub/models"
	"freelancehub/services/errs"

	"go.uber.org/zap"
)

// SearchQuery is the directory filter as the client submits it.
type SearchQuery struct {
	Term         string
	Skills       []string
	MinRating    float64
	MaxRate      *float64
	Availability string // "all" or empty means any.
}

// CreateProfile creates the empty profile that backs a freelancer account.
func (s *DefaultProfileService) CreateProfile(ctx context.Context, freelancer models.Identity) (*models.Profile, error) {
	const op = "CreateProfile"
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden(op, "only freelancers have profiles")
	}
	now := time.Now().UTC()
	p := &models.Profile{
		FreelancerID: freelancer.ID,
		Name:         strings.TrimSpace(freelancer.Name),
		Skills:       []string{},
		Availability: models.AvailabilityFullTime,
		Portfolio:    []models.PortfolioItem{},
		HiredBy:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict(op, errs.ReasonDuplicateProfile, "profile already exists")
		}
		return nil, errs.Upstream(op, err)
	}
	s.Logger.Info("Profile created", zap.String("freelancerId", p.FreelancerID))
	return p, nil
}

func (s *DefaultProfileService) GetOwnProfile(ctx context.Context, freelancer models.Identity) (*ProfileView, error) {
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden("GetOwnProfile", "only freelancers have profiles")
	}
	return s.GetProfile(ctx, freelancer.ID, freelancer)
}

func (s *DefaultProfileService) GetProfile(ctx context.Context, freelancerID string, viewer models.Identity) (*ProfileView, error) {
	p, err := s.Profiles.GetByFreelancerID(ctx, freelancerID)
	if err != nil {
		return nil, errs.FromStore("GetProfile", err, "freelancer")
	}
	v := NewProfileView(*p, viewer)
	return &v, nil
}

// UpdateProfile applies the command to the caller's own profile.
func (s *DefaultProfileService) UpdateProfile(ctx context.Context, freelancer models.Identity, cmd UpdateProfileCommand) (*ProfileView, error) {
	const op = "UpdateProfile"
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden(op, "only freelancers can edit a profile")
	}
	current, err := s.Profiles.GetByFreelancerID(ctx, freelancer.ID)
	if err != nil {
		return nil, errs.FromStore(op, err, "profile")
	}
	details, err := cmd.Apply(current.Details())
	if err != nil {
		return nil, err
	}
	if err := s.Profiles.UpdateDetails(ctx, freelancer.ID, details); err != nil {
		return nil, errs.FromStore(op, err, "profile")
	}
	s.Logger.Debug("Profile updated", zap.String("freelancerId", freelancer.ID))
	return s.GetProfile(ctx, freelancer.ID, freelancer)
}

func (s *DefaultProfileService) SearchFreelancers(ctx context.Context, query SearchQuery, viewer models.Identity) ([]ProfileView, error) {
	const op = "SearchFreelancers"
	criteria := profileRepo.SearchCriteria{
		Term:      query.Term,
		Skills:    query.Skills,
		MinRating: query.MinRating,
		MaxRate:   query.MaxRate,
	}
	switch a := strings.ToLower(strings.TrimSpace(query.Availability)); a {
	case "", "all":
	default:
		if !models.Availability(a).Valid() {
			return nil, errs.Validation(op, "unknown availability %q", query.Availability)
		}
		criteria.Availability = models.Availability(a)
	}
	if query.MinRating < 0 || query.MinRating > 5 {
		return nil, errs.Validation(op, "minRating must be between 0 and 5")
	}
	if query.MaxRate != nil && *query.MaxRate < 0 {
		return nil, errs.Validation(op, "maxRate must be non-negative")
	}

	profiles, err := s.Profiles.Search(ctx, criteria)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}
	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, NewProfileView(p, viewer))
	}
	return views, nil
}
