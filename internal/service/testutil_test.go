package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"toystore-api/internal/config"
	"toystore-api/internal/dto"
	"toystore-api/internal/model"
	"toystore-api/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single connection so the in-memory database is shared
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Order{}, &model.OrderItem{}))
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // reduce noise in tests
	return logger
}

func newTestOrderService(t *testing.T, cfg config.Order) (OrderService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewOrderService(db,
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
		cfg, quietLogger())
	return svc, db
}

func defaultOrderConfig() config.Order {
	return config.Order{DefaultCountry: "India"}
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, name string, price int64, stock int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
	}).Error)
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.StockQuantity
}

func testAddress() *dto.ShippingAddress {
	return &dto.ShippingAddress{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		ZipCode:  "560001",
	}
}

func orderInput(id uint, name string, price int64, qty int) dto.OrderItemInput {
	return dto.OrderItemInput{
		ID:       id,
		Name:     name,
		Price:    dto.Price{Decimal: decimal.NewFromInt(price)},
		Quantity: dto.Quantity(qty),
	}
}
