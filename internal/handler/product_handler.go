package handler

import (
	"context"
	"net/http"
	"strconv"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProductService interface {
	StockProduct(ctx context.Context, in usecase.StockProductInput) (model.Product, error)
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// /products のAPI
type ProductHandler struct {
	uc ProductService
}

// DI
func NewProductHandler(uc ProductService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductCreateRequest struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/products", h.create)
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.StockProduct(c.Request().Context(), usecase.StockProductInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
