package memoryRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
)

type BidRepo struct {
	mu   sync.RWMutex
	bids map[string]models.Bid
}

func NewBidRepo() *BidRepo {
	return &BidRepo{bids: map[string]models.Bid{}}
}

// violatesUnique checks the two partial unique indexes against b as it is
// about to be stored.
func (r *BidRepo) violatesUnique(b models.Bid) bool {
	for id, other := range r.bids {
		if id == b.ID || other.ProjectID != b.ProjectID || other.Status != b.Status {
			continue
		}
		switch b.Status {
		case models.BidPending:
			if other.FreelancerID == b.FreelancerID {
				return true
			}
		case models.BidAccepted:
			return true
		}
	}
	return false
}

func (r *BidRepo) Create(_ context.Context, bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bids[bid.ID]; ok || r.violatesUnique(*bid) {
		return fmt.Errorf("bid on %s: %w", bid.ProjectID, repository.ErrDuplicate)
	}
	r.bids[bid.ID] = *bid
	return nil
}

func (r *BidRepo) GetByID(_ context.Context, id string) (*models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bids[id]
	if !ok {
		return nil, fmt.Errorf("bid %s: %w", id, repository.ErrNotFound)
	}
	return &b, nil
}

func (r *BidRepo) filter(keep func(models.Bid) bool) []models.Bid {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Bid{}
	for _, b := range r.bids {
		if keep(b) {
			out = append(out, b)
		}
	}
	newestFirst(out, func(b models.Bid) time.Time { return b.CreatedAt })
	return out
}

func (r *BidRepo) ListByFreelancer(_ context.Context, freelancerID string) ([]models.Bid, error) {
	return r.filter(func(b models.Bid) bool { return b.FreelancerID == freelancerID }), nil
}

func (r *BidRepo) ListByProject(_ context.Context, projectID string) ([]models.Bid, error) {
	return r.filter(func(b models.Bid) bool { return b.ProjectID == projectID }), nil
}

func (r *BidRepo) conditional(id string, from models.BidStatus, fn func(*models.Bid)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bids[id]
	if !ok || b.Status != from {
		return fmt.Errorf("bid %s no longer %s: %w", id, from, repository.ErrStale)
	}
	fn(&b)
	if r.violatesUnique(b) {
		return fmt.Errorf("bid %s: %w", id, repository.ErrDuplicate)
	}
	b.UpdatedAt = now()
	r.bids[id] = b
	return nil
}

func (r *BidRepo) CompareAndSetStatus(_ context.Context, id string, from, to models.BidStatus) error {
	return r.conditional(id, from, func(b *models.Bid) { b.Status = to })
}

func (r *BidRepo) UpdateTerms(_ context.Context, id string, terms models.BidTerms) error {
	return r.conditional(id, models.BidPending, func(b *models.Bid) {
		b.Amount = terms.Amount
		b.EstimatedDeliveryDays = terms.EstimatedDeliveryDays
		b.Proposal = terms.Proposal
	})
}

func (r *BidRepo) RejectPendingSiblings(_ context.Context, projectID, keepBidID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, b := range r.bids {
		if b.ProjectID == projectID && b.Status == models.BidPending && id != keepBidID {
			b.Status = models.BidRejected
			b.UpdatedAt = now()
			r.bids[id] = b
			n++
		}
	}
	return n, nil
}
