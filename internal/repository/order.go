package repository

import (
	"context"
	"gsinfo-directory/internal/model"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]*model.PaymentOrder, error)
	ListPending(ctx context.Context, createdBefore time.Time, limit int) ([]*model.PaymentOrder, error)
	Transition(ctx context.Context, tx *gorm.DB, orderID string, status model.OrderStatus) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.PaymentOrder) error {
	return r.conn(tx).WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByUser(ctx context.Context, userID string, limit int) ([]*model.PaymentOrder, error) {
	var orders []*model.PaymentOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListPending(ctx context.Context, createdBefore time.Time, limit int) ([]*model.PaymentOrder, error) {
	var orders []*model.PaymentOrder
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.OrderPending, createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// Transition moves a PENDING order to status. It reports false when the order
// is missing or has already left PENDING; the amount column is never written.
func (r *orderRepoImpl) Transition(ctx context.Context, tx *gorm.DB, orderID string, status model.OrderStatus) (bool, error) {
	result := r.conn(tx).WithContext(ctx).Model(&model.PaymentOrder{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
