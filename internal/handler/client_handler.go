package handler

import (
	"context"
	"net/http"
	"strconv"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ClientService interface {
	RegisterClient(ctx context.Context, in usecase.RegisterClientInput) (model.Client, error)
	GetClient(ctx context.Context, clientID int64) (model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
}

type ClientHandler struct {
	uc ClientService
}

func NewClientHandler(uc ClientService) *ClientHandler {
	return &ClientHandler{uc: uc}
}

type ClientCreateRequest struct {
	Name        string `json:"name"`
	OrderNumber string `json:"order_number"`
}

func (h *ClientHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/clients")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.DELETE("/:id", h.delete)
}

func (h *ClientHandler) create(c echo.Context) error {
	var req ClientCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.RegisterClient(c.Request().Context(), usecase.RegisterClientInput{
		Name:        req.Name,
		OrderNumber: req.OrderNumber,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ClientHandler) list(c echo.Context) error {
	out, err := h.uc.ListClients(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetClient(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteClient(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
