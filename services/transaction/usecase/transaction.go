package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
	"minibank/services/transaction"
)

const notAuthorizedMessage = "transaction not authorized by external authorizer"

// TransactionUC implements the transaction.TransactionUC interface
type TransactionUC struct {
	repo     transaction.TransactionRepo
	authGW   transaction.AuthorizationGW
	notifyGW transaction.NotificationGW
	eventGW  transaction.EventGW
	dedupGW  transaction.DedupGW
	logger   *logger.AppLogger
}

// NewTransactionUC creates a new transaction use case
func NewTransactionUC(
	repo transaction.TransactionRepo,
	authGW transaction.AuthorizationGW,
	notifyGW transaction.NotificationGW,
	eventGW transaction.EventGW,
	dedupGW transaction.DedupGW,
	appLogger *logger.AppLogger,
) transaction.TransactionUC {
	return &TransactionUC{
		repo:     repo,
		authGW:   authGW,
		notifyGW: notifyGW,
		eventGW:  eventGW,
		dedupGW:  dedupGW,
		logger:   appLogger,
	}
}

// SendMoney runs the fully synchronous flow: create a pending transaction,
// authorize, and resolve it inline. A denied or failed transfer is a normal
// outcome (terminal FAILED transaction), not an error; only missing accounts,
// bad input and a broken authorizer surface as errors.
func (uc *TransactionUC) SendMoney(ctx context.Context, req transaction.TransferRequest) (*models.Transaction, error) {
	payer, payee, err := uc.loadParties(ctx, req)
	if err != nil {
		return nil, err
	}

	txn, err := models.NewTransaction(payer, payee, req.Value)
	if err != nil {
		return nil, err
	}

	authorized, err := uc.authGW.IsAuthorized(ctx)
	if err != nil {
		return nil, errors.Newf(errors.TransientFault, "authorization gateway unavailable: %v", err)
	}

	err = uc.repo.WithinTx(ctx, func(r transaction.TxRepo) error {
		if err := r.CreateTransaction(ctx, txn); err != nil {
			return err
		}
		return uc.applyOutcome(ctx, r, txn, authorized)
	})
	if err != nil {
		return nil, err
	}

	uc.logTransition(txn)
	uc.notify(ctx, txn)

	return txn, nil
}

// Transfer runs the publish-then-consume flow: the pending transaction is
// durably committed first, and the event announcing it is published only
// after the commit succeeds.
func (uc *TransactionUC) Transfer(ctx context.Context, req transaction.TransferRequest) (*models.Transaction, error) {
	payer, payee, err := uc.loadParties(ctx, req)
	if err != nil {
		return nil, err
	}

	txn, err := models.NewTransaction(payer, payee, req.Value)
	if err != nil {
		return nil, err
	}

	err = uc.repo.WithinTx(ctx, func(r transaction.TxRepo) error {
		return r.CreateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	event := models.NewTransactionEvent(txn.ID)
	if err := uc.eventGW.PublishTransactionCreated(event); err != nil {
		// The pending row is already durable; it stays resolvable, so the
		// caller gets an error instead of a silent announcement gap.
		uc.logger.WithFields(logrus.Fields{
			"transaction_id": txn.ID,
		}).WithError(err).Error("failed to publish transaction created event")
		return nil, errors.Newf(errors.TransientFault, "failed to publish transaction event: %v", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"payer_id":       txn.PayerID,
		"payee_id":       txn.PayeeID,
		"status":         txn.Status,
	}).Info("transaction created and event published")

	return txn, nil
}

// ProcessEvent resolves a pending transaction from a delivered event. The
// event body is not trusted: authoritative state is re-read by id. Duplicate
// deliveries short-circuit as logged no-ops; a missing transaction is an
// error so the delivery is retried and eventually dead-lettered, never
// silently dropped.
func (uc *TransactionUC) ProcessEvent(ctx context.Context, event models.TransactionEvent) error {
	entry := uc.logger.WithFields(logrus.Fields{
		"transaction_id": event.TransactionID,
	})

	if processed, err := uc.dedupGW.WasProcessed(ctx, event.TransactionID); err != nil {
		entry.WithError(err).Warn("dedup marker lookup failed, falling back to status check")
	} else if processed {
		entry.Info("duplicate event delivery, skipping")
		return nil
	}

	txn, err := uc.repo.GetTransactionByID(ctx, event.TransactionID)
	if err != nil {
		if errors.IsNotFound(err) {
			entry.Error("event references a transaction that does not exist")
		}
		return err
	}

	if txn.Resolved() {
		entry.WithFields(logrus.Fields{"status": txn.Status}).Info("transaction already resolved, skipping duplicate delivery")
		uc.markProcessed(ctx, txn.ID)
		return nil
	}

	authorized, err := uc.authGW.IsAuthorized(ctx)
	if err != nil {
		return errors.Newf(errors.TransientFault, "authorization gateway unavailable: %v", err)
	}

	var alreadyResolved bool
	err = uc.repo.WithinTx(ctx, func(r transaction.TxRepo) error {
		locked, err := r.GetTransactionForUpdate(ctx, txn.ID)
		if err != nil {
			return err
		}
		if locked.Resolved() {
			alreadyResolved = true
			return nil
		}
		*txn = *locked
		return uc.applyOutcome(ctx, r, txn, authorized)
	})
	if err != nil {
		return err
	}

	if alreadyResolved {
		entry.Info("transaction resolved concurrently, skipping")
		uc.markProcessed(ctx, txn.ID)
		return nil
	}

	uc.logTransition(txn)
	uc.markProcessed(ctx, txn.ID)
	uc.notify(ctx, txn)

	return nil
}

// Revert undoes a completed transaction, restoring both balances.
func (uc *TransactionUC) Revert(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn *models.Transaction

	err := uc.repo.WithinTx(ctx, func(r transaction.TxRepo) error {
		locked, err := r.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		txn = locked

		payer, payee, err := uc.lockParties(ctx, r, txn)
		if err != nil {
			return err
		}

		if err := txn.Revert(payer, payee); err != nil {
			return err
		}

		if err := r.UpdateTransactionStatus(ctx, txn, models.TransactionCompleted); err != nil {
			return err
		}
		if err := r.UpdateAccountBalance(ctx, payer); err != nil {
			return err
		}
		return r.UpdateAccountBalance(ctx, payee)
	})
	if err != nil {
		if errors.CodeOf(err) == errors.ConsistencyFault {
			uc.logger.WithFields(logrus.Fields{
				"transaction_id": id,
			}).WithError(err).Error("ledger consistency fault on revert")
		}
		return nil, err
	}

	uc.logTransition(txn)
	return txn, nil
}

// ListByAccount returns every transaction in which the account is payer or
// payee, newest first.
func (uc *TransactionUC) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	if _, err := uc.repo.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return uc.repo.ListByAccount(ctx, accountID)
}

// applyOutcome takes a pending transaction to its terminal state and persists
// the status transition together with any balance changes, all inside the
// caller's unit of work.
func (uc *TransactionUC) applyOutcome(ctx context.Context, r transaction.TxRepo, txn *models.Transaction, authorized bool) error {
	payer, payee, err := uc.lockParties(ctx, r, txn)
	if err != nil {
		return err
	}

	if authorized {
		if err := txn.Process(payer, payee); err != nil {
			return err
		}
	} else {
		if err := txn.Fail(notAuthorizedMessage); err != nil {
			return err
		}
	}

	if err := r.UpdateTransactionStatus(ctx, txn, models.TransactionPending); err != nil {
		return err
	}

	if txn.Status != models.TransactionCompleted {
		return nil
	}
	if err := r.UpdateAccountBalance(ctx, payer); err != nil {
		return err
	}
	return r.UpdateAccountBalance(ctx, payee)
}

// lockParties fetches both accounts FOR UPDATE in a stable id order so that
// concurrent transfers over the same pair cannot deadlock.
func (uc *TransactionUC) lockParties(ctx context.Context, r transaction.TxRepo, txn *models.Transaction) (payer, payee *models.Account, err error) {
	first, second := txn.PayerID, txn.PayeeID
	if second.String() < first.String() {
		first, second = second, first
	}

	a, err := r.GetAccountForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.GetAccountForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == txn.PayerID {
		return a, b, nil
	}
	return b, a, nil
}

func (uc *TransactionUC) loadParties(ctx context.Context, req transaction.TransferRequest) (payer, payee *models.Account, err error) {
	payer, err = uc.repo.GetAccountByID(ctx, req.PayerID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil, errors.Newf(errors.AccountNotFound, "payer with id %s not found", req.PayerID)
		}
		return nil, nil, err
	}

	payee, err = uc.repo.GetAccountByID(ctx, req.PayeeID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil, errors.Newf(errors.AccountNotFound, "payee with id %s not found", req.PayeeID)
		}
		return nil, nil, err
	}

	return payer, payee, nil
}

// notify is best-effort: a failed notification never reverts an outcome.
func (uc *TransactionUC) notify(ctx context.Context, txn *models.Transaction) {
	if err := uc.notifyGW.Notify(ctx, txn); err != nil {
		uc.logger.WithFields(logrus.Fields{
			"transaction_id": txn.ID,
			"payer_id":       txn.PayerID,
			"payee_id":       txn.PayeeID,
		}).WithError(err).Warn("notification failed")
	}
}

func (uc *TransactionUC) markProcessed(ctx context.Context, id uuid.UUID) {
	if err := uc.dedupGW.MarkProcessed(ctx, id); err != nil {
		uc.logger.WithFields(logrus.Fields{
			"transaction_id": id,
		}).WithError(err).Warn("failed to mark event as processed")
	}
}

func (uc *TransactionUC) logTransition(txn *models.Transaction) {
	uc.logger.WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"payer_id":       txn.PayerID,
		"payee_id":       txn.PayeeID,
		"status":         txn.Status,
		"message":        txn.Message,
	}).Info("transaction state transition")
}
