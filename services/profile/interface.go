package profile

import (
	"context"
	"fmt"

	profileRepo "freelancehub/database/repository/profile"
	"freelancehub/models"

	"go.uber.org/zap"
)

// ProfileService covers the freelancer profile and the public directory.
type ProfileService interface {
	CreateProfile(ctx context.Context, freelancer models.Identity) (*models.Profile, error)
	GetOwnProfile(ctx context.Context, freelancer models.Identity) (*ProfileView, error)
	GetProfile(ctx context.Context, freelancerID string, viewer models.Identity) (*ProfileView, error)
	UpdateProfile(ctx context.Context, freelancer models.Identity, cmd UpdateProfileCommand) (*ProfileView, error)
	SearchFreelancers(ctx context.Context, query SearchQuery, viewer models.Identity) ([]ProfileView, error)
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	Profiles profileRepo.ProfileRepository
	Logger   *zap.Logger
}

func NewDefaultProfileService(profiles profileRepo.ProfileRepository, logger *zap.Logger) (*DefaultProfileService, error) {
	if profiles == nil {
		return nil, fmt.Errorf("profile service initialization error: profile repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultProfileService{Profiles: profiles, Logger: logger}, nil
}
