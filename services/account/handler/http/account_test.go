package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/models"
	"minibank/services/account/mocks"
)

func newTestHandler(t *testing.T) (*AccountHandler, *mocks.MockAccountUC) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uc := mocks.NewMockAccountUC(ctrl)
	return NewAccountHandler(uc), uc
}

const registerBody = `{"full_name":"Jo Silva","document":"12345678901","email":"jo@example.com","password":"secret123","kind":"common"}`

func TestRegister_Created(t *testing.T) {
	h, uc := newTestHandler(t)
	acc := models.NewAccount("Jo Silva", "12345678901", "jo@example.com", "hash", models.AccountKindCommon)

	uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(acc, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(registerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), acc.ID.String())
	// The password hash must never leave the service
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestRegister_Duplicate_Conflict(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.ErrDuplicateAccount)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(registerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidInput_BadRequest(t *testing.T) {
	h, uc := newTestHandler(t)

	uc.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(nil, errors.New(errors.InvalidValue, "password must have at least 6 characters"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(registerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByID_OK(t *testing.T) {
	h, uc := newTestHandler(t)
	acc := models.NewAccount("Jo Silva", "12345678901", "jo@example.com", "hash", models.AccountKindCommon)

	uc.EXPECT().GetByID(gomock.Any(), acc.ID).Return(acc, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(acc.ID.String())

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), acc.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	h, uc := newTestHandler(t)
	id := uuid.New()

	uc.EXPECT().GetByID(gomock.Any(), id).Return(nil, errors.ErrAccountNotFound)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
