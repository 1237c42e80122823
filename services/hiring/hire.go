package hiring

import (
	"context"
	"errors"
	"strings"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
	"freelancehub/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// resolveFreelancer looks the freelancer up by id, then by name.
func (s *DefaultHiringService) resolveFreelancer(ctx context.Context, op string, ref FreelancerRef) (*models.Profile, error) {
	id, name := strings.TrimSpace(ref.ID), strings.TrimSpace(ref.Name)
	var (
		p   *models.Profile
		err error
	)
	switch {
	case id != "":
		p, err = s.Profiles.GetByFreelancerID(ctx, id)
	case name != "":
		p, err = s.Profiles.GetByName(ctx, name)
	default:
		return nil, errs.Validation(op, "freelancerId or freelancerName is required")
	}
	if err != nil {
		return nil, errs.FromStore(op, err, "freelancer")
	}
	return p, nil
}

// Hire records that client hired the freelancer. A repeat hire is reported as
// a conflict and changes nothing.
func (s *DefaultHiringService) Hire(ctx context.Context, client models.Identity, target FreelancerRef) (*HireResult, error) {
	const op = "Hire"
	if client.Role != models.RoleClient {
		return nil, errs.Forbidden(op, "only clients can hire freelancers")
	}
	freelancer, err := s.resolveFreelancer(ctx, op, target)
	if err != nil {
		return nil, err
	}

	existing, err := s.Hires.Get(ctx, client.ID, freelancer.FreelancerID)
	switch {
	case err == nil:
		s.repairHiredBy(ctx, freelancer, existing)
		return nil, errs.Conflict(op, errs.ReasonAlreadyHired, "you have already hired %s", displayName(freelancer))
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errs.Upstream(op, err)
	}

	record := &models.HireRecord{
		ID:           uuid.New().String(),
		ClientID:     client.ID,
		ClientName:   client.Name,
		FreelancerID: freelancer.FreelancerID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Hires.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict(op, errs.ReasonAlreadyHired, "you have already hired %s", displayName(freelancer))
		}
		return nil, errs.Upstream(op, err)
	}

	if err := s.Profiles.AddHiredBy(ctx, freelancer.FreelancerID, client.ID); err != nil {
		if delErr := s.Hires.Delete(ctx, record.ID); delErr != nil {
			s.Logger.Error("Failed to roll back hire record",
				zap.String("hireId", record.ID), zap.Error(delErr))
		}
		return nil, errs.Upstream(op, err)
	}

	s.Logger.Info("Freelancer hired",
		zap.String("clientId", client.ID), zap.String("freelancerId", freelancer.FreelancerID))
	return &HireResult{
		Hired:          true,
		FreelancerID:   freelancer.FreelancerID,
		FreelancerName: displayName(freelancer),
		Record:         record,
	}, nil
}

// repairHiredBy restores hiredBy when an earlier hire died between its two
// writes. $addToSet makes it a no-op otherwise.
func (s *DefaultHiringService) repairHiredBy(ctx context.Context, freelancer *models.Profile, record *models.HireRecord) {
	for _, c := range freelancer.HiredBy {
		if c == record.ClientID {
			return
		}
	}
	if err := s.Profiles.AddHiredBy(ctx, freelancer.FreelancerID, record.ClientID); err != nil {
		s.Logger.Warn("Failed to repair hiredBy",
			zap.String("freelancerId", freelancer.FreelancerID), zap.Error(err))
	}
}

func (s *DefaultHiringService) ListHires(ctx context.Context, client models.Identity) ([]models.HireRecord, error) {
	if client.Role != models.RoleClient {
		return nil, errs.Forbidden("ListHires", "only clients have hires")
	}
	records, err := s.Hires.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, errs.Upstream("ListHires", err)
	}
	return records, nil
}

func displayName(p *models.Profile) string {
	if p.Name == "" {
		return "this freelancer"
	}
	return p.Name
}
