package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"minibank/internal/pkg/errors"
	"minibank/internal/utils"
	"minibank/services/account"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountUC account.AccountUC
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUC account.AccountUC) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Register handles account registration requests
func (h *AccountHandler) Register(c echo.Context) error {
	var req account.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}

	acc, err := h.accountUC.Register(c.Request().Context(), req)
	if err != nil {
		switch errors.CodeOf(err) {
		case errors.InvalidValue:
			return utils.BadRequestResponse(c, err.Error())
		case errors.DuplicateAccount:
			return utils.ConflictResponse(c, err.Error())
		default:
			return utils.InternalServerErrorResponse(c, err.Error())
		}
	}

	return utils.SuccessResponse(c, http.StatusCreated, "account registered", acc)
}

// GetByID handles account lookup requests
func (h *AccountHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid account id")
	}

	acc, err := h.accountUC.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return utils.NotFoundResponse(c, err.Error())
		}
		return utils.InternalServerErrorResponse(c, err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "", acc)
}
