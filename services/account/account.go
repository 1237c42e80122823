package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"strings"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
	"freelancehub/services/errs"
	"freelancehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(reg models.AccountRegistration, adminKey string) error {
	const op = "Register"
	if strings.TrimSpace(reg.Name) == "" {
		return errs.Validation(op, "name is required")
	}
	if addr, err := mail.ParseAddress(reg.Email); err != nil || addr.Address != strings.TrimSpace(reg.Email) {
		return errs.Validation(op, "a valid email is required")
	}
	if len(reg.Password) < minPasswordLength {
		return errs.Validation(op, "password must be at least %d characters", minPasswordLength)
	}
	if !reg.Role.Valid() {
		return errs.Validation(op, "role must be client or freelancer")
	}
	if reg.Role == models.RoleAdmin {
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(reg.AdminKey), []byte(adminKey)) != 1 {
			return errs.Forbidden(op, "admin registration is not allowed")
		}
	}
	return nil
}

// Register creates the account, its freelancer profile when applicable, and
// signs the first session token.
func (s *DefaultAccountService) Register(ctx context.Context, reg models.AccountRegistration) (*models.AuthResponse, error) {
	const op = "Register"
	if err := validateRegistration(reg, s.Settings.AdminSignupKey); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}
	now := time.Now().UTC()
	acct := &models.Account{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(reg.Name),
		Email:     normalizeEmail(reg.Email),
		Role:      reg.Role,
		Security:  models.Security{PasswordHash: string(hashed)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict(op, errs.ReasonDuplicateAccount, "an account with this email already exists")
		}
		return nil, errs.Upstream(op, err)
	}
	s.Logger.Info("Account registered", zap.String("accountId", acct.ID), zap.String("role", string(acct.Role)))

	s.ensureProfile(ctx, acct)
	return s.issueToken(ctx, op, acct)
}

// ensureProfile creates a missing freelancer profile. Failures are logged and
// retried on the next login.
func (s *DefaultAccountService) ensureProfile(ctx context.Context, acct *models.Account) {
	if acct.Role != models.RoleFreelancer {
		return
	}
	_, err := s.Profiles.CreateProfile(ctx, acct.Identity())
	if err == nil || errs.ReasonOf(err) == errs.ReasonDuplicateProfile {
		return
	}
	s.Logger.Warn("Failed to create freelancer profile", zap.String("accountId", acct.ID), zap.Error(err))
}

func (s *DefaultAccountService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	const op = "Authenticate"
	acct, err := s.Accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.Unauthorized(op, "invalid email or password")
		}
		return nil, errs.Upstream(op, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Security.PasswordHash), []byte(password)); err != nil {
		return nil, errs.Unauthorized(op, "invalid email or password")
	}
	s.ensureProfile(ctx, acct)
	return s.issueToken(ctx, op, acct)
}

// issueToken signs a token and makes it the account's only live session.
func (s *DefaultAccountService) issueToken(ctx context.Context, op string, acct *models.Account) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(acct.Identity(), s.Settings.TokenTTL)
	if err != nil {
		return nil, errs.Upstream(op, err)
	}
	hash := utils.HashToken(token)
	if err := s.Accounts.SetTokenHash(ctx, acct.ID, hash); err != nil {
		return nil, errs.FromStore(op, err, "account")
	}
	if err := s.Cache.Set(ctx, acct.ID, hash, s.Settings.TokenTTL); err != nil {
		s.Logger.Warn("Failed to cache token hash", zap.String("accountId", acct.ID), zap.Error(err))
	}
	acct.Security = models.Security{}
	return &models.AuthResponse{Token: token, Account: acct}, nil
}

func (s *DefaultAccountService) Logout(ctx context.Context, identity models.Identity) error {
	const op = "Logout"
	if err := s.Accounts.SetTokenHash(ctx, identity.ID, ""); err != nil {
		return errs.FromStore(op, err, "account")
	}
	if err := s.Cache.Delete(ctx, identity.ID); err != nil {
		s.Logger.Warn("Failed to clear cached token hash", zap.String("accountId", identity.ID), zap.Error(err))
	}
	s.Logger.Info("Account logged out", zap.String("accountId", identity.ID))
	return nil
}

// VerifyToken checks the signature, then that the token is the account's live
// session. The cache is consulted first; a miss falls back to the store.
func (s *DefaultAccountService) VerifyToken(ctx context.Context, token string) (models.Identity, error) {
	const op = "VerifyToken"
	identity, err := utils.IdentityFromToken(token)
	if err != nil {
		return models.Identity{}, errs.Unauthorized(op, "invalid or expired token")
	}
	hash := utils.HashToken(token)

	cached, err := s.Cache.Get(ctx, identity.ID)
	switch {
	case err == nil && cached == hash:
		return identity, nil
	case err == nil:
		return models.Identity{}, errs.Unauthorized(op, "session is no longer valid")
	case !errors.Is(err, utils.ErrCacheMiss):
		s.Logger.Warn("Auth cache lookup failed", zap.String("accountId", identity.ID), zap.Error(err))
	}

	acct, err := s.Accounts.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Identity{}, errs.Unauthorized(op, "account no longer exists")
		}
		return models.Identity{}, errs.Upstream(op, err)
	}
	if acct.Security.TokenHash == "" || subtle.ConstantTimeCompare([]byte(acct.Security.TokenHash), []byte(hash)) != 1 {
		return models.Identity{}, errs.Unauthorized(op, "session is no longer valid")
	}
	if err := s.Cache.Set(ctx, acct.ID, hash, utils.AuthCacheTTL); err != nil {
		s.Logger.Warn("Failed to cache token hash", zap.String("accountId", acct.ID), zap.Error(err))
	}
	return acct.Identity(), nil
}

func (s *DefaultAccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	acct, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, errs.FromStore("GetAccount", err, "account")
	}
	acct.Security = models.Security{}
	return acct, nil
}

func (s *DefaultAccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.Accounts.GetAll(ctx)
	if err != nil {
		return nil, errs.Upstream("ListAccounts", err)
	}
	for i := range accounts {
		accounts[i].Security = models.Security{}
	}
	return accounts, nil
}
