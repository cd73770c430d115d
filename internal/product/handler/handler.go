package handler

import (
	"errors"
	"net/http"
	"strconv"

	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/adjust", h.Adjust)
	g.GET("/:id/transactions", h.ListTransactions)
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
	Skip  int         `json:"skip"`
	Take  int         `json:"take"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *ProductHandler) List(c echo.Context) error {
	filters := &dto.ProductFilters{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Skip:   intParam(c, "skip", 0),
		Take:   intParam(c, "take", 0),
	}
	if v := c.QueryParam("min_qty"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.MinQty = &n
		}
	}
	if v := c.QueryParam("max_qty"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.MaxQty = &n
		}
	}

	items, total, err := h.uc.List(c.Request().Context(), filters)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Skip: filters.Skip, Take: filters.Take})
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	p, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var input dto.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	p, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	var input dto.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	p, err := h.uc.Update(c.Request().Context(), id, &input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) Adjust(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	var input dto.AdjustmentInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if _, err := h.uc.Adjust(c.Request().Context(), id, &input); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "inventory adjusted"})
}

func (h *ProductHandler) ListTransactions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
	}

	filters := &dto.TransactionFilters{
		Skip: intParam(c, "skip", 0),
		Take: intParam(c, "take", 0),
	}

	items, total, err := h.uc.ListTransactions(c.Request().Context(), id, filters)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Skip: filters.Skip, Take: filters.Take})
}

// writeError maps storage error kinds onto HTTP statuses. The mapping has to
// stay deterministic; anything unrecognized is an internal error and gets
// logged with its cause.
func (h *ProductHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, product.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, product.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
	case errors.Is(err, product.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, errorResponse{Error: "insufficient stock"})
	default:
		h.logger.Error("product request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func intParam(c echo.Context, name string, fallback int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
