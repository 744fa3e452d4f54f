package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"toystore-api/internal/apperr"
	"toystore-api/internal/config"
	"toystore-api/internal/dto"
	"toystore-api/internal/model"
	"toystore-api/internal/repository"
)

var gstRate = decimal.NewFromFloat(0.18)

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	GetOrder(ctx context.Context, orderID uint) (*dto.OrderView, error)
	ListOrders(ctx context.Context, status string) ([]*dto.OrderView, error)
	ListUserOrders(ctx context.Context, userID string) ([]*dto.OrderView, error)
	AcceptOrder(ctx context.Context, orderID uint) error
	CancelOrder(ctx context.Context, orderID uint, requesterID string) error
	UpdateShippingAddress(ctx context.Context, orderID uint, requesterID string, addr *dto.ShippingAddress) error
	ItemTracking(ctx context.Context, orderID, itemID uint) (*dto.TrackingView, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	cfg         config.Order
	logger      *logrus.Logger
}

func NewOrderService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	cfg config.Order,
	logger *logrus.Logger,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// generateOrderNumber keeps the storefront's historical format:
// ORD + unix millis + a random 0-999 suffix. Not collision-proof under
// heavy concurrency; the unique index on order_number is the backstop.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD%d%d", time.Now().UnixMilli(), rand.Intn(1000))
}

func validateShippingAddress(addr *dto.ShippingAddress) error {
	if addr == nil {
		return apperr.Validation("shipping address and payment method are required")
	}

	required := []struct {
		field, value string
	}{
		{"fullName", addr.FullName},
		{"email", addr.Email},
		{"phone", addr.Phone},
		{"address", addr.Address},
		{"city", addr.City},
		{"zipCode", addr.ZipCode},
	}
	for _, f := range required {
		if f.value == "" {
			return apperr.Validation("missing required shipping field: %s", f.field)
		}
	}
	return nil
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("no items in order")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1 for %s", item.Name)
		}
		if item.Price.IsNegative() {
			return nil, apperr.Validation("price cannot be negative for %s", item.Name)
		}
	}
	if req.ShippingAddress == nil || req.PaymentMethod == "" {
		return nil, apperr.Validation("shipping address and payment method are required")
	}
	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}

	addr := *req.ShippingAddress
	if addr.Country == "" {
		addr.Country = s.cfg.DefaultCountry
	}

	paymentStatus := model.PaymentStatusCompleted
	if req.PaymentMethod == model.PaymentMethodCOD {
		paymentStatus = model.PaymentStatusPending
	}

	paymentDetails := "{}"
	if len(req.PaymentDetails) > 0 {
		paymentDetails = string(req.PaymentDetails)
	}

	var userID *string
	if req.UserID != "" {
		uid := req.UserID
		userID = &uid
	}

	order := &model.Order{
		OrderNumber:      generateOrderNumber(),
		UserID:           userID,
		ShippingFullName: addr.FullName,
		ShippingEmail:    addr.Email,
		ShippingPhone:    addr.Phone,
		ShippingAddress:  addr.Address,
		ShippingCity:     addr.City,
		ShippingState:    addr.State,
		ShippingZipCode:  addr.ZipCode,
		ShippingCountry:  addr.Country,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    paymentStatus,
		PaymentDetails:   paymentDetails,
		OrderStatus:      model.OrderStatusPending,
	}

	// Lines may repeat a product id; the stock check must see the order's
	// combined demand per product, not each line in isolation.
	required := make(map[uint]int, len(req.Items))
	for _, item := range req.Items {
		required[item.ID] += int(item.Quantity)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock every product row up front; the locks hold until commit so
		// the later decrement cannot race another checkout.
		checked := make(map[uint]bool, len(required))
		for _, item := range req.Items {
			if checked[item.ID] {
				continue
			}
			checked[item.ID] = true

			product, err := s.productRepo.FindByIDForUpdate(ctx, tx, item.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product %s not found", item.Name)
			}
			if err != nil {
				return err
			}

			if product.StockQuantity < required[item.ID] {
				return apperr.InsufficientStock(
					"insufficient stock for %s. Available: %d",
					item.Name, product.StockQuantity,
				)
			}
		}

		subtotal := decimal.Zero
		items := make([]*model.OrderItem, len(req.Items))
		for i, item := range req.Items {
			lineTotal := item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
			subtotal = subtotal.Add(lineTotal)

			items[i] = &model.OrderItem{
				ProductID:    item.ID,
				ProductName:  item.Name,
				ProductPrice: item.Price.Decimal,
				Quantity:     int(item.Quantity),
				ItemTotal:    lineTotal,
			}
		}
		subtotal = subtotal.Round(2)

		tax := decimal.Zero
		if s.cfg.ApplyGST {
			tax = subtotal.Mul(gstRate).Round(2)
		}

		order.Subtotal = subtotal
		order.TaxAmount = tax
		order.TotalAmount = subtotal.Add(tax)

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for i, item := range items {
			item.OrderID = order.ID
			if err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, -item.Quantity); err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", req.Items[i].ID, err)
			}
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"items_count":  len(req.Items),
		"total_amount": order.TotalAmount.String(),
	}).Info("order placed")

	return &dto.CreateOrderResponse{
		Success:     true,
		Message:     "Order placed successfully",
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID uint) (*dto.OrderView, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, err
	}

	return toOrderView(order, true), nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, status string) ([]*dto.OrderView, error) {
	orders, err := s.orderRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o, false)
	}
	return views, nil
}

func (s *orderServiceImpl) ListUserOrders(ctx context.Context, userID string) ([]*dto.OrderView, error) {
	if userID == "" {
		return nil, apperr.Validation("userId is required")
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o, true)
	}
	return views, nil
}

func (s *orderServiceImpl) AcceptOrder(ctx context.Context, orderID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return err
		}

		if order.OrderStatus != model.OrderStatusPending {
			return apperr.InvalidTransition("order cannot be accepted while %s", order.OrderStatus)
		}

		rows, err := s.orderRepo.UpdateStatus(ctx, tx,
			orderID, []string{model.OrderStatusPending}, model.OrderStatusAccepted)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.InvalidTransition("order cannot be accepted while %s", order.OrderStatus)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("order_id", orderID).Info("order accepted")
	return nil
}

// requesterOwns reports whether requesterID may act on the order. Guest
// orders carry no owner and stay open to whoever holds the order id.
func requesterOwns(order *model.Order, requesterID string) bool {
	return order.UserID == nil || *order.UserID == requesterID
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, orderID uint, requesterID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return err
		}

		if !requesterOwns(order, requesterID) {
			return apperr.Forbidden("you are not allowed to modify this order")
		}
		if order.OrderStatus == model.OrderStatusCancelled || order.OrderStatus == model.OrderStatusDelivered {
			return apperr.InvalidTransition("order is already %s", order.OrderStatus)
		}

		items, err := s.orderRepo.GetOrderItems(ctx, tx, orderID)
		if err != nil {
			return err
		}

		// Exact inverse of the decrement performed at creation. The status
		// guard above (under the order row lock) keeps this at most once.
		for _, item := range items {
			if err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("restock product %d: %w", item.ProductID, err)
			}
		}

		rows, err := s.orderRepo.UpdateStatus(ctx, tx, orderID,
			[]string{
				model.OrderStatusPending,
				model.OrderStatusProcessing,
				model.OrderStatusAccepted,
				model.OrderStatusShipped,
			},
			model.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.InvalidTransition("order is already %s", order.OrderStatus)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("order_id", orderID).Info("order cancelled, stock restored")
	return nil
}

func (s *orderServiceImpl) UpdateShippingAddress(ctx context.Context, orderID uint, requesterID string, addr *dto.ShippingAddress) error {
	if err := validateShippingAddress(addr); err != nil {
		return err
	}

	updated := *addr
	if updated.Country == "" {
		updated.Country = s.cfg.DefaultCountry
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return err
		}

		if !requesterOwns(order, requesterID) {
			return apperr.Forbidden("you are not allowed to modify this order")
		}
		if order.OrderStatus != model.OrderStatusPending && order.OrderStatus != model.OrderStatusProcessing {
			return apperr.InvalidTransition("address can no longer be changed once the order is %s", order.OrderStatus)
		}

		return s.orderRepo.UpdateShipping(ctx, tx, orderID, &updated)
	})
}

func (s *orderServiceImpl) ItemTracking(ctx context.Context, orderID, itemID uint) (*dto.TrackingView, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if item.ID == itemID {
			status := item.Status
			if status == "" {
				status = order.OrderStatus
			}
			return buildTracking(order.OrderNumber, status), nil
		}
	}

	return nil, apperr.NotFound("order item not found")
}

func changeable(status string) bool {
	return status == model.OrderStatusPending || status == model.OrderStatusProcessing
}

func toOrderView(o *model.Order, withItems bool) *dto.OrderView {
	view := &dto.OrderView{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Subtotal:    o.Subtotal,
		TaxAmount:   o.TaxAmount,
		TotalAmount: o.TotalAmount,
		ShippingAddress: &dto.ShippingAddress{
			FullName: o.ShippingFullName,
			Email:    o.ShippingEmail,
			Phone:    o.ShippingPhone,
			Address:  o.ShippingAddress,
			City:     o.ShippingCity,
			State:    o.ShippingState,
			ZipCode:  o.ShippingZipCode,
			Country:  o.ShippingCountry,
		},
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		OrderStatus:     o.OrderStatus,
		Cancelable:      changeable(o.OrderStatus),
		AddressEditable: changeable(o.OrderStatus),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.UserID != nil {
		view.UserID = *o.UserID
	}

	if withItems {
		view.Items = make([]dto.OrderItemView, len(o.Items))
		for i, item := range o.Items {
			view.Items[i] = dto.OrderItemView{
				ID:           item.ID,
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				ProductPrice: item.ProductPrice,
				Quantity:     item.Quantity,
				ItemTotal:    item.ItemTotal,
			}
		}
	}

	return view
}
