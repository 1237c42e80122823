package memoryRepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"freelancehub/database/repository"
	profileRepo "freelancehub/database/repository/profile"
	"freelancehub/models"
)

type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
	order    []string
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: map[string]models.Profile{}}
}

func (r *ProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.FreelancerID]; ok {
		return fmt.Errorf("profile %s: %w", profile.FreelancerID, repository.ErrDuplicate)
	}
	r.profiles[profile.FreelancerID] = cloneProfile(*profile)
	r.order = append(r.order, profile.FreelancerID)
	return nil
}

func (r *ProfileRepo) GetByFreelancerID(_ context.Context, freelancerID string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[freelancerID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", freelancerID, repository.ErrNotFound)
	}
	p = cloneProfile(p)
	return &p, nil
}

func (r *ProfileRepo) GetByName(_ context.Context, name string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, id := range r.order {
		if p := r.profiles[id]; strings.EqualFold(p.Name, name) {
			p = cloneProfile(p)
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile named %q: %w", name, repository.ErrNotFound)
}

func (r *ProfileRepo) Search(_ context.Context, criteria profileRepo.SearchCriteria) ([]models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Profile{}
	for _, id := range r.order {
		if p := r.profiles[id]; profileRepo.MatchesCriteria(p, criteria) {
			out = append(out, cloneProfile(p))
		}
	}
	profileRepo.SortProfiles(out)
	return out, nil
}

func (r *ProfileRepo) update(freelancerID string, fn func(*models.Profile)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[freelancerID]
	if !ok {
		return fmt.Errorf("profile %s: %w", freelancerID, repository.ErrNotFound)
	}
	fn(&p)
	p.UpdatedAt = now()
	r.profiles[freelancerID] = p
	return nil
}

func (r *ProfileRepo) UpdateDetails(_ context.Context, freelancerID string, d models.ProfileDetails) error {
	return r.update(freelancerID, func(p *models.Profile) {
		p.Name = d.Name
		p.Bio = d.Bio
		p.Skills = cloneStrings(d.Skills)
		p.HourlyRate = d.HourlyRate
		p.Availability = d.Availability
		p.Portfolio = append([]models.PortfolioItem(nil), d.Portfolio...)
		p.ProfileImage = d.ProfileImage
	})
}

func (r *ProfileRepo) AddHiredBy(_ context.Context, freelancerID, clientID string) error {
	return r.update(freelancerID, func(p *models.Profile) {
		for _, c := range p.HiredBy {
			if c == clientID {
				return
			}
		}
		p.HiredBy = append(p.HiredBy, clientID)
	})
}

func (r *ProfileRepo) SetRating(_ context.Context, freelancerID string, agg models.RatingAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[freelancerID]
	if !ok {
		return fmt.Errorf("profile %s: %w", freelancerID, repository.ErrNotFound)
	}
	if p.RatingCount > agg.Count {
		return fmt.Errorf("profile %s holds a newer rating: %w", freelancerID, repository.ErrStale)
	}
	p.Rating = agg.Mean
	p.RatingCount = agg.Count
	p.UpdatedAt = now()
	r.profiles[freelancerID] = p
	return nil
}

func (r *ProfileRepo) ResetRating(_ context.Context, freelancerID string, agg models.RatingAggregate) error {
	return r.update(freelancerID, func(p *models.Profile) {
		p.Rating = agg.Mean
		p.RatingCount = agg.Count
	})
}
