package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toystore-api/internal/dto"
	"toystore-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	// FindByID preloads the order's items.
	FindByID(ctx context.Context, orderID uint) (*model.Order, error)
	// FindByIDForUpdate locks the order row so status transitions serialize.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	List(ctx context.Context, status string) ([]*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	GetOrderItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error)
	// UpdateStatus flips order_status only while the current status is in
	// `from`; the returned row count tells the caller whether the guard held.
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, from []string, to string) (int64, error)
	UpdateShipping(ctx context.Context, tx *gorm.DB, orderID uint, addr *dto.ShippingAddress) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) List(ctx context.Context, status string) ([]*model.Order, error) {
	var orders []*model.Order

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("order_status = ?", status)
	}

	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order

	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, from []string, to string) (int64, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND order_status IN ?", orderID, from).
		Updates(map[string]interface{}{
			"order_status": to,
			"updated_at":   time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *orderRepoImpl) UpdateShipping(ctx context.Context, tx *gorm.DB, orderID uint, addr *dto.ShippingAddress) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"shipping_full_name": addr.FullName,
			"shipping_email":     addr.Email,
			"shipping_phone":     addr.Phone,
			"shipping_address":   addr.Address,
			"shipping_city":      addr.City,
			"shipping_state":     addr.State,
			"shipping_zip_code":  addr.ZipCode,
			"shipping_country":   addr.Country,
			"updated_at":         time.Now(),
		}).Error
}
