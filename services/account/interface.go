package account

import (
	"context"
	"fmt"
	"time"

	accountRepo "freelancehub/database/repository/account"
	"freelancehub/models"
	"freelancehub/services/profile"
	"freelancehub/utils"

	"go.uber.org/zap"
)

// AccountService handles signup, sessions and token verification.
type AccountService interface {
	Register(ctx context.Context, reg models.AccountRegistration) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, identity models.Identity) error
	VerifyToken(ctx context.Context, token string) (models.Identity, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

type Settings struct {
	TokenTTL       time.Duration
	AdminSignupKey string
}

const defaultTokenTTL = 72 * time.Hour

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Accounts accountRepo.AccountRepository
	Profiles profile.ProfileService
	Cache    utils.AuthCache
	Settings Settings
	Logger   *zap.Logger
}

func NewDefaultAccountService(accounts accountRepo.AccountRepository, profiles profile.ProfileService, cache utils.AuthCache, settings Settings, logger *zap.Logger) (*DefaultAccountService, error) {
	if accounts == nil {
		return nil, fmt.Errorf("account service initialization error: account repository is nil")
	}
	if profiles == nil {
		return nil, fmt.Errorf("account service initialization error: profile service is nil")
	}
	if cache == nil {
		cache = utils.NewLocalAuthCache()
	}
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = defaultTokenTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAccountService{
		Accounts: accounts,
		Profiles: profiles,
		Cache:    cache,
		Settings: settings,
		Logger:   logger,
	}, nil
}
