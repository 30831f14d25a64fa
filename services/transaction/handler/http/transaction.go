package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"minibank/internal/pkg/errors"
	"minibank/internal/utils"
	"minibank/services/transaction"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	transactionUC transaction.TransactionUC
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUC transaction.TransactionUC) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

type transferPayload struct {
	PayerID string `json:"payer_id"`
	PayeeID string `json:"payee_id"`
	Value   string `json:"value"`
}

func (p transferPayload) toRequest() (transaction.TransferRequest, error) {
	var req transaction.TransferRequest

	payerID, err := uuid.Parse(p.PayerID)
	if err != nil {
		return req, errors.New(errors.InvalidValue, "payer_id is not a valid id")
	}
	payeeID, err := uuid.Parse(p.PayeeID)
	if err != nil {
		return req, errors.New(errors.InvalidValue, "payee_id is not a valid id")
	}
	value, err := decimal.NewFromString(p.Value)
	if err != nil {
		return req, errors.New(errors.InvalidValue, "value is not a valid decimal")
	}

	req.PayerID = payerID
	req.PayeeID = payeeID
	req.Value = value
	return req, nil
}

// SendMoney handles the synchronous transfer flow. A FAILED transaction is a
// normal response body, not an HTTP error.
func (h *TransactionHandler) SendMoney(c echo.Context) error {
	var payload transferPayload
	if err := c.Bind(&payload); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	req, err := payload.toRequest()
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	txn, err := h.transactionUC.SendMoney(c.Request().Context(), req)
	if err != nil {
		return writeTransactionError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "", txn)
}

// Transfer handles the asynchronous transfer flow: the pending transaction is
// accepted and resolved later by the event consumer.
func (h *TransactionHandler) Transfer(c echo.Context) error {
	var payload transferPayload
	if err := c.Bind(&payload); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	req, err := payload.toRequest()
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	txn, err := h.transactionUC.Transfer(c.Request().Context(), req)
	if err != nil {
		return writeTransactionError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusAccepted, "transaction accepted", txn)
}

// Revert handles revert requests for completed transactions
func (h *TransactionHandler) Revert(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid transaction id")
	}

	txn, err := h.transactionUC.Revert(c.Request().Context(), id)
	if err != nil {
		return writeTransactionError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "transaction reverted", txn)
}

// ListByAccount handles transaction history requests
func (h *TransactionHandler) ListByAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid account id")
	}

	transactions, err := h.transactionUC.ListByAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeTransactionError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "", transactions)
}

func writeTransactionError(c echo.Context, err error) error {
	switch errors.CodeOf(err) {
	case errors.InvalidValue, errors.SamePayerPayee:
		return utils.BadRequestResponse(c, err.Error())
	case errors.AccountNotFound, errors.TransactionNotFound:
		return utils.NotFoundResponse(c, err.Error())
	case errors.InvalidTransition:
		return utils.ConflictResponse(c, err.Error())
	case errors.TransientFault:
		return utils.ServiceUnavailableResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c, err.Error())
	}
}
