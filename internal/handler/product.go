package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"toystore-api/internal/apperr"
	"toystore-api/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	// Admin passes showAll=true to include out-of-stock products.
	showAll := c.QueryParam("showAll") == "true"

	products, err := h.productService.ListProducts(ctx, showAll)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := orderIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := orderIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		StockQuantity *int `json:"stock_quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.StockQuantity == nil {
		return apperr.Validation("stock quantity is required")
	}

	if err := h.productService.UpdateStock(ctx, productID, *req.StockQuantity); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Stock updated successfully",
		"stock_quantity": *req.StockQuantity,
	})
}
