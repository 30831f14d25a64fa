package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
	"minibank/services/account"
)

var documentPattern = regexp.MustCompile(`^[0-9]{11,14}$`)

// AccountUC implements the account.AccountUC interface
type AccountUC struct {
	repo   account.AccountRepo
	logger *logger.AppLogger
}

// NewAccountUC creates a new account use case
func NewAccountUC(repo account.AccountRepo, appLogger *logger.AppLogger) account.AccountUC {
	return &AccountUC{
		repo:   repo,
		logger: appLogger,
	}
}

// Register creates a new account with a hashed password and a zero balance.
// Document and email must be unique.
func (uc *AccountUC) Register(ctx context.Context, req account.RegisterRequest) (*models.Account, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	if existing, err := uc.repo.GetAccountByDocument(ctx, req.Document); err != nil && !errors.IsNotFound(err) {
		return nil, err
	} else if existing != nil {
		return nil, errors.Newf(errors.DuplicateAccount, "an account with document %q already exists", req.Document)
	}

	if existing, err := uc.repo.GetAccountByEmail(ctx, req.Email); err != nil && !errors.IsNotFound(err) {
		return nil, err
	} else if existing != nil {
		return nil, errors.Newf(errors.DuplicateAccount, "an account with email %q already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Newf(errors.InternalError, "failed to hash password: %v", err)
	}

	acc := models.NewAccount(req.FullName, req.Document, req.Email, string(hash), req.Kind)
	if err := uc.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"account_id": acc.ID,
		"kind":       acc.Kind,
	}).Info("account registered")

	return acc, nil
}

// GetByID retrieves an account by its id
func (uc *AccountUC) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return uc.repo.GetAccountByID(ctx, id)
}

func validateRegisterRequest(req account.RegisterRequest) error {
	if len(strings.TrimSpace(req.FullName)) < 3 {
		return errors.New(errors.InvalidValue, "full name must have at least 3 characters")
	}
	if !documentPattern.MatchString(req.Document) {
		return errors.New(errors.InvalidValue, "document must contain 11 to 14 digits")
	}
	if !strings.Contains(req.Email, "@") {
		return errors.New(errors.InvalidValue, "email is not valid")
	}
	if len(req.Password) < 6 {
		return errors.New(errors.InvalidValue, "password must have at least 6 characters")
	}
	if req.Kind != models.AccountKindCommon && req.Kind != models.AccountKindMerchant {
		return errors.New(errors.InvalidValue, "kind must be common or merchant")
	}
	return nil
}
