package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toystore-api/internal/model"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	List(ctx context.Context, includeOutOfStock bool) ([]*model.Product, error)
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	// FindByIDForUpdate reads the product row under SELECT ... FOR UPDATE so
	// a concurrent checkout cannot pass the stock check on the same row.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error)
	AdjustStock(ctx context.Context, tx *gorm.DB, productID uint, delta int) error
	SetStock(ctx context.Context, productID uint, quantity int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{Name: "Building Blocks", Price: decimal.NewFromInt(500), StockQuantity: 40},
		{Name: "Wooden Train Set", Price: decimal.NewFromInt(1299), StockQuantity: 15},
		{Name: "Plush Elephant", Price: decimal.NewFromInt(349), StockQuantity: 60},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) List(ctx context.Context, includeOutOfStock bool) ([]*model.Product, error) {
	var products []*model.Product

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeOutOfStock {
		q = q.Where("stock_quantity > 0")
	}

	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) AdjustStock(ctx context.Context, tx *gorm.DB, productID uint, delta int) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", delta),
			"updated_at":     time.Now(),
		}).Error
}

func (r *productRepoImpl) SetStock(ctx context.Context, productID uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_quantity": quantity,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
