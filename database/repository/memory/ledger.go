package memoryRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
)

type pairKey struct{ client, freelancer string }

// ledger is a set of entries unique per (client, freelancer).
type ledger[T any] struct {
	mu     sync.RWMutex
	byID   map[string]T
	byPair map[pairKey]string
	keyOf  func(T) (id string, pair pairKey)
	what   string
}

func newLedger[T any](what string, keyOf func(T) (string, pairKey)) *ledger[T] {
	return &ledger[T]{byID: map[string]T{}, byPair: map[pairKey]string{}, keyOf: keyOf, what: what}
}

func (l *ledger[T]) insert(v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, pair := l.keyOf(v)
	if _, ok := l.byPair[pair]; ok {
		return fmt.Errorf("%s for %s/%s: %w", l.what, pair.client, pair.freelancer, repository.ErrDuplicate)
	}
	if _, ok := l.byID[id]; ok {
		return fmt.Errorf("%s %s: %w", l.what, id, repository.ErrDuplicate)
	}
	l.byID[id] = v
	l.byPair[pair] = id
	return nil
}

func (l *ledger[T]) get(clientID, freelancerID string) (*T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	id, ok := l.byPair[pairKey{clientID, freelancerID}]
	if !ok {
		return nil, fmt.Errorf("%s for %s/%s: %w", l.what, clientID, freelancerID, repository.ErrNotFound)
	}
	v := l.byID[id]
	return &v, nil
}

func (l *ledger[T]) delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", l.what, id, repository.ErrNotFound)
	}
	_, pair := l.keyOf(v)
	delete(l.byID, id)
	delete(l.byPair, pair)
	return nil
}

func (l *ledger[T]) filter(keep func(T) bool, createdAt func(T) time.Time) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []T{}
	for _, v := range l.byID {
		if keep(v) {
			out = append(out, v)
		}
	}
	newestFirst(out, createdAt)
	return out
}

type HireRepo struct {
	l *ledger[models.HireRecord]
}

func NewHireRepo() *HireRepo {
	return &HireRepo{l: newLedger("hire record", func(h models.HireRecord) (string, pairKey) {
		return h.ID, pairKey{h.ClientID, h.FreelancerID}
	})}
}

func hireCreatedAt(h models.HireRecord) time.Time { return h.CreatedAt }

func (r *HireRepo) Insert(_ context.Context, record *models.HireRecord) error {
	return r.l.insert(*record)
}

func (r *HireRepo) Get(_ context.Context, clientID, freelancerID string) (*models.HireRecord, error) {
	return r.l.get(clientID, freelancerID)
}

func (r *HireRepo) Delete(_ context.Context, id string) error {
	return r.l.delete(id)
}

func (r *HireRepo) ListByClient(_ context.Context, clientID string) ([]models.HireRecord, error) {
	return r.l.filter(func(h models.HireRecord) bool { return h.ClientID == clientID }, hireCreatedAt), nil
}

func (r *HireRepo) ListByFreelancer(_ context.Context, freelancerID string) ([]models.HireRecord, error) {
	return r.l.filter(func(h models.HireRecord) bool { return h.FreelancerID == freelancerID }, hireCreatedAt), nil
}

type RatingRepo struct {
	l *ledger[models.Rating]
}

func NewRatingRepo() *RatingRepo {
	return &RatingRepo{l: newLedger("rating", func(r models.Rating) (string, pairKey) {
		return r.ID, pairKey{r.ClientID, r.FreelancerID}
	})}
}

func ratingCreatedAt(r models.Rating) time.Time { return r.CreatedAt }

func (r *RatingRepo) Insert(_ context.Context, rating *models.Rating) error {
	return r.l.insert(*rating)
}

func (r *RatingRepo) Get(_ context.Context, clientID, freelancerID string) (*models.Rating, error) {
	return r.l.get(clientID, freelancerID)
}

func (r *RatingRepo) Delete(_ context.Context, id string) error {
	return r.l.delete(id)
}

func (r *RatingRepo) ListByFreelancer(_ context.Context, freelancerID string) ([]models.Rating, error) {
	return r.l.filter(func(x models.Rating) bool { return x.FreelancerID == freelancerID }, ratingCreatedAt), nil
}

func (r *RatingRepo) Aggregate(ctx context.Context, freelancerID string) (models.RatingAggregate, error) {
	ratings, _ := r.ListByFreelancer(ctx, freelancerID)
	if len(ratings) == 0 {
		return models.RatingAggregate{}, nil
	}
	var sum float64
	for _, x := range ratings {
		sum += x.Value
	}
	return models.RatingAggregate{Mean: sum / float64(len(ratings)), Count: len(ratings)}, nil
}
