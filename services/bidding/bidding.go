package bidding

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
	"freelancehub/services/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateTerms(op string, t models.BidTerms) (models.BidTerms, error) {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return t, errs.Validation(op, "amount must be greater than zero")
	}
	if t.EstimatedDeliveryDays <= 0 {
		return t, errs.Validation(op, "estimatedDeliveryDays must be at least 1")
	}
	t.Proposal = strings.TrimSpace(t.Proposal)
	if t.Proposal == "" {
		return t, errs.Validation(op, "proposal is required")
	}
	return t, nil
}

// SubmitBid places a pending bid on an open project.
func (s *DefaultBiddingService) SubmitBid(ctx context.Context, freelancer models.Identity, projectID string, terms models.BidTerms) (*models.Bid, error) {
	const op = "SubmitBid"
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden(op, "only freelancers can bid")
	}
	terms, err := validateTerms(op, terms)
	if err != nil {
		return nil, err
	}
	project, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	if project.Status != models.ProjectOpen {
		return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "project is %s and no longer accepts bids", project.Status)
	}

	now := time.Now().UTC()
	bid := &models.Bid{
		ID:                    uuid.New().String(),
		ProjectID:             project.ID,
		ProjectTitle:          project.Title,
		FreelancerID:          freelancer.ID,
		FreelancerName:        freelancer.Name,
		Amount:                terms.Amount,
		EstimatedDeliveryDays: terms.EstimatedDeliveryDays,
		Proposal:              terms.Proposal,
		Status:                models.BidPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.Bids.Create(ctx, bid); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict(op, errs.ReasonDuplicateBid, "you already have a pending bid on this project")
		}
		return nil, errs.Upstream(op, err)
	}
	s.Logger.Info("Bid submitted", zap.String("bidId", bid.ID), zap.String("projectId", project.ID))
	return bid, nil
}

// EditBid changes the terms of the caller's own pending bid.
func (s *DefaultBiddingService) EditBid(ctx context.Context, freelancer models.Identity, bidID string, terms models.BidTerms) (*models.Bid, error) {
	const op = "EditBid"
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden(op, "only the bidding freelancer can edit a bid")
	}
	terms, err := validateTerms(op, terms)
	if err != nil {
		return nil, err
	}
	bid, err := s.Bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, errs.FromStore(op, err, "bid")
	}
	if bid.FreelancerID != freelancer.ID {
		return nil, errs.Forbidden(op, "bid belongs to another freelancer")
	}
	if bid.Status != models.BidPending {
		return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "bid is %s and can no longer be edited", bid.Status)
	}
	if err := s.Bids.UpdateTerms(ctx, bid.ID, terms); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "bid is no longer pending")
		}
		return nil, errs.Upstream(op, err)
	}
	return s.reload(ctx, op, bid.ID)
}

func (s *DefaultBiddingService) Accept(ctx context.Context, client models.Identity, bidID string) (*models.Bid, error) {
	return s.transition(ctx, client, bidID, models.BidEventAccept)
}

func (s *DefaultBiddingService) Reject(ctx context.Context, client models.Identity, bidID string) (*models.Bid, error) {
	return s.transition(ctx, client, bidID, models.BidEventReject)
}

func (s *DefaultBiddingService) Withdraw(ctx context.Context, freelancer models.Identity, bidID string) (*models.Bid, error) {
	return s.transition(ctx, freelancer, bidID, models.BidEventWithdraw)
}

// transition fires ev on the bid. The store write is a compare-and-set on the
// status read here, so a lost race surfaces as an invalid transition.
func (s *DefaultBiddingService) transition(ctx context.Context, actor models.Identity, bidID string, ev models.BidEvent) (*models.Bid, error) {
	op := "Bid." + string(ev)
	if actor.Role != ev.Actor() {
		return nil, errs.Forbidden(op, "only the %s may %s a bid", ev.Actor(), ev)
	}
	bid, err := s.Bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, errs.FromStore(op, err, "bid")
	}
	project, err := s.Projects.GetByID(ctx, bid.ProjectID)
	if err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	switch actor.Role {
	case models.RoleClient:
		if project.ClientID != actor.ID {
			return nil, errs.Forbidden(op, "bid is on another client's project")
		}
	case models.RoleFreelancer:
		if bid.FreelancerID != actor.ID {
			return nil, errs.Forbidden(op, "bid belongs to another freelancer")
		}
	}

	to, ok := models.NextBidStatus(bid.Status, ev)
	if !ok {
		return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "cannot %s a bid that is %s", ev, bid.Status)
	}
	if ev == models.BidEventAccept && project.Status != models.ProjectOpen {
		return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "project is %s and cannot accept a bid", project.Status)
	}

	if err := s.Bids.CompareAndSetStatus(ctx, bid.ID, bid.Status, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrStale):
			return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "bid changed state concurrently")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, errs.Conflict(op, errs.ReasonInvalidTransition, "project already has an accepted bid")
		}
		return nil, errs.Upstream(op, err)
	}

	if ev == models.BidEventAccept {
		if err := s.assignProject(ctx, op, bid); err != nil {
			return nil, err
		}
		s.rejectSiblingsOrDefer(ctx, bid.ProjectID, bid.ID)
	}

	s.Logger.Info("Bid transitioned",
		zap.String("bidId", bid.ID), zap.String("from", string(bid.Status)), zap.String("to", string(to)))
	bid.Status = to
	bid.UpdatedAt = time.Now().UTC()
	return bid, nil
}

// assignProject moves the project to in-progress for an accepted bid and
// puts the bid back to pending if that fails.
func (s *DefaultBiddingService) assignProject(ctx context.Context, op string, bid *models.Bid) error {
	err := s.Projects.Assign(ctx, bid.ProjectID, bid.FreelancerID, bid.ID)
	if err == nil {
		return nil
	}
	if revertErr := s.Bids.CompareAndSetStatus(ctx, bid.ID, models.BidAccepted, models.BidPending); revertErr != nil {
		s.Logger.Error("Failed to revert accepted bid",
			zap.String("bidId", bid.ID), zap.Error(revertErr))
	}
	if errors.Is(err, repository.ErrStale) {
		return errs.Conflict(op, errs.ReasonInvalidTransition, "project is no longer open")
	}
	return errs.FromStore(op, err, "project")
}

func (s *DefaultBiddingService) rejectSiblingsOrDefer(ctx context.Context, projectID, acceptedBidID string) {
	n, err := s.Bids.RejectPendingSiblings(ctx, projectID, acceptedBidID)
	if err == nil {
		if n > 0 {
			s.Logger.Info("Rejected sibling bids", zap.String("projectId", projectID), zap.Int64("count", n))
		}
		return
	}
	s.Logger.Warn("Sibling rejection failed, deferring", zap.String("projectId", projectID), zap.Error(err))
	if s.Tasks == nil {
		return
	}
	if err := s.Tasks.EnqueueRejectSiblings(ctx, projectID, acceptedBidID); err != nil {
		s.Logger.Error("Failed to defer sibling rejection", zap.String("projectId", projectID), zap.Error(err))
	}
}

// RejectSiblings is run by the worker. It does nothing if the accepted bid was
// reverted in the meantime.
func (s *DefaultBiddingService) RejectSiblings(ctx context.Context, projectID, acceptedBidID string) error {
	const op = "RejectSiblings"
	bid, err := s.Bids.GetByID(ctx, acceptedBidID)
	if err != nil {
		return errs.FromStore(op, err, "bid")
	}
	if bid.Status != models.BidAccepted || bid.ProjectID != projectID {
		return nil
	}
	if _, err := s.Bids.RejectPendingSiblings(ctx, projectID, acceptedBidID); err != nil {
		return errs.Upstream(op, err)
	}
	return nil
}

func (s *DefaultBiddingService) ListFreelancerBids(ctx context.Context, freelancer models.Identity, tab string) (*BidListing, error) {
	const op = "ListFreelancerBids"
	if freelancer.Role != models.RoleFreelancer {
		return nil, errs.Forbidden(op, "only freelancers have bids")
	}
	tab = strings.ToLower(strings.TrimSpace(tab))
	status, ok := tabStatus(tab)
	if !ok {
		return nil, errs.Validation(op, "unknown tab %q", tab)
	}
	all, err := s.Bids.ListByFreelancer(ctx, freelancer.ID)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}

	shown := all
	if status != "" {
		shown = make([]models.Bid, 0, len(all))
		for _, b := range all {
			if b.Status == status {
				shown = append(shown, b)
			}
		}
	}
	if tab == "" {
		tab = "all"
	}
	return &BidListing{Tab: tab, Bids: shown, Stats: ComputeStats(all)}, nil
}

func (s *DefaultBiddingService) ListProjectBids(ctx context.Context, client models.Identity, projectID string) ([]models.Bid, error) {
	const op = "ListProjectBids"
	project, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errs.FromStore(op, err, "project")
	}
	if client.Role != models.RoleAdmin && (client.Role != models.RoleClient || project.ClientID != client.ID) {
		return nil, errs.Forbidden(op, "only the project's client can list its bids")
	}
	bids, err := s.Bids.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}
	return bids, nil
}

func (s *DefaultBiddingService) reload(ctx context.Context, op, bidID string) (*models.Bid, error) {
	bid, err := s.Bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, errs.FromStore(op, err, "bid")
	}
	return bid, nil
}
