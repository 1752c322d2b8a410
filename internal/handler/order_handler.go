package handler

import (
	"context"
	"net/http"
	"strconv"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (usecase.PlaceOrderOutput, error)
	ExecuteOrder(ctx context.Context, orderID int64) (usecase.ExecuteOrderOutput, error)
	GetOrder(ctx context.Context, orderID int64) (model.Order, error)
	ListOrders(ctx context.Context, clientID *int64) ([]model.Order, error)
}

type OrderHandler struct {
	uc OrderService
}

func NewOrderHandler(uc OrderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	ClientID int64             `json:"client_id"`
	Lines    []model.OrderLine `json:"lines"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/:id/execute", h.execute)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		ClientID: req.ClientID,
		Lines:    req.Lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ?client_id= で絞り込み
func (h *OrderHandler) list(c echo.Context) error {
	var clientID *int64
	if v := c.QueryParam("client_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid client_id")
		}
		clientID = &id
	}

	out, err := h.uc.ListOrders(c.Request().Context(), clientID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) execute(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.ExecuteOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
