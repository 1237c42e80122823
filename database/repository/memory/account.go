package memoryRepo

import (
	"context"
	"fmt"
	"sync"

	"freelancehub/database/repository"
	"freelancehub/models"
)

type AccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	byEmail  map[string]string
	order    []string
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: map[string]models.Account{}, byEmail: map[string]string{}}
}

func (r *AccountRepo) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return fmt.Errorf("account %s: %w", account.ID, repository.ErrDuplicate)
	}
	if _, ok := r.byEmail[account.Email]; ok {
		return fmt.Errorf("account email %s: %w", account.Email, repository.ErrDuplicate)
	}
	r.accounts[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	r.order = append(r.order, account.ID)
	return nil
}

func (r *AccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, repository.ErrNotFound)
	}
	return &a, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("account email %s: %w", email, repository.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *AccountRepo) GetAll(_ context.Context) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.accounts[id])
	}
	return out, nil
}

func (r *AccountRepo) SetTokenHash(_ context.Context, id, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, repository.ErrNotFound)
	}
	a.Security.TokenHash = tokenHash
	a.UpdatedAt = now()
	r.accounts[id] = a
	return nil
}
