package accountRepo

import (
	"context"

	"freelancehub/models"
)

// AccountRepository defines methods for account data access.
type AccountRepository interface {
	// Create inserts a new account. A taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAll(ctx context.Context) ([]models.Account, error)
	// SetTokenHash stores the live token hash. An empty hash logs the account out.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
}
