package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the account routes
func (h *AccountHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/accounts")

	g.POST("", h.Register)
	g.GET("/:id", h.GetByID)
}
