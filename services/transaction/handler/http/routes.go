package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the transaction routes
func (h *TransactionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/transactions")

	g.POST("/send", h.SendMoney)
	g.POST("/transfer", h.Transfer)
	g.POST("/:id/revert", h.Revert)

	e.GET("/api/v1/accounts/:id/transactions", h.ListByAccount)
}
