package repository

import (
	"encoding/json"
	"time"

	"course_market/internal/domain/order/model"

	"gorm.io/gorm"
)

// OrderRepository 订单仓储接口
// 订单由购物车结算创建，这里只负责查询与状态流转
type OrderRepository interface {
	GetByNo(orderNo string) (*model.Order, error)
	GetByUser(userID string) ([]model.Order, error)
	UpdateStatus(orderNo string, status string, channel string, paidAt *time.Time, extra json.RawMessage) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByNo(orderNo string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUser(userID string) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(orderNo string, status string, channel string, paidAt *time.Time, extra json.RawMessage) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if channel != "" {
		updates["channel"] = channel
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	if extra != nil {
		updates["extra_params"] = string(extra)
	}
	return r.db.Model(&model.Order{}).Where("order_no = ?", orderNo).Updates(updates).Error
}
