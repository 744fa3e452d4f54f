package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"toystore-api/internal/apperr"
	"toystore-api/internal/dto"
	"toystore-api/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateGatewayOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	result, err := h.paymentService.CreateGatewayOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   result.Order,
		"keyId":   result.KeyID,
	})
}

func (h *PaymentHandler) VerifySignature(c echo.Context) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return apperr.Validation("missing razorpay verification fields")
	}

	valid := h.paymentService.VerifySignature(
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": valid,
	})
}
