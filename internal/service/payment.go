package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"toystore-api/internal/apperr"
	"toystore-api/internal/client"
	"toystore-api/internal/config"
	"toystore-api/internal/dto"
)

var hundred = decimal.NewFromInt(100)

type CreatePaymentOrderResult struct {
	Order *client.GatewayOrder
	KeyID string
}

type PaymentService interface {
	CreateGatewayOrder(ctx context.Context, req *dto.CreatePaymentOrderRequest) (*CreatePaymentOrderResult, error)
	// VerifySignature authorizes a non-COD order before it may be recorded
	// as paid. It recomputes HMAC-SHA256 over "orderID|paymentID" with the
	// key secret and compares in constant time.
	VerifySignature(orderID, paymentID, signature string) bool
}

type paymentServiceImpl struct {
	gateway client.RazorpayClient
	cfg     config.Razorpay
	logger  *logrus.Logger
}

func NewPaymentService(gateway client.RazorpayClient, cfg config.Razorpay, logger *logrus.Logger) PaymentService {
	return &paymentServiceImpl{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *paymentServiceImpl) CreateGatewayOrder(ctx context.Context, req *dto.CreatePaymentOrderRequest) (*CreatePaymentOrderResult, error) {
	if s.cfg.KeyID == "" || s.cfg.KeySecret == "" {
		return nil, apperr.Configuration("razorpay keys are not configured on server")
	}
	if req.Amount.IsZero() {
		return nil, apperr.Validation("amount is required")
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", time.Now().UnixMilli())
	}

	// Razorpay expects the amount in minor units (paise).
	amountMinor := req.Amount.Decimal.Mul(hundred).Round(0).IntPart()

	order, err := s.gateway.CreateOrder(ctx, amountMinor, currency, receipt)
	if err != nil {
		s.logger.WithError(err).Error("razorpay create order failed")
		return nil, apperr.Upstream("failed to create razorpay order")
	}

	s.logger.WithFields(logrus.Fields{
		"gateway_order_id": order.ID,
		"amount_minor":     amountMinor,
		"currency":         currency,
	}).Info("razorpay order created")

	return &CreatePaymentOrderResult{Order: order, KeyID: s.cfg.KeyID}, nil
}

func (s *paymentServiceImpl) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.cfg.KeySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
