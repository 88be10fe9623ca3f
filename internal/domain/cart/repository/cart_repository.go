package repository

import (
	"course_market/internal/domain/cart/model"
	orderModel "course_market/internal/domain/order/model"

	"gorm.io/gorm"
)

// CartRepository 购物车仓储接口
type CartRepository interface {
	GetByUserID(userID string) (*model.Cart, error)
	Create(cart *model.Cart) error
	AddItem(item *model.CartItem) error
	RemoveItem(cartID, courseID string) error
	UpdateDiscount(cartID string, percent float64) error
	CheckoutTx(cartID string, order *orderModel.Order) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetByUserID 按用户取购物车（含条目，按加入顺序）
func (r *cartRepository) GetByUserID(userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Create(cart *model.Cart) error {
	return r.db.Create(cart).Error
}

func (r *cartRepository) AddItem(item *model.CartItem) error {
	return r.db.Create(item).Error
}

// RemoveItem 移除未结算的条目，已购买的记录不可移除
func (r *cartRepository) RemoveItem(cartID, courseID string) error {
	result := r.db.
		Where("cart_id = ? AND course_id = ? AND purchased = ?", cartID, courseID, false).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) UpdateDiscount(cartID string, percent float64) error {
	result := r.db.Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("discount_percent", percent)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CheckoutTx 结算事务
// 条目标记已购买、券折扣清零、订单落库，三者同一事务内完成
func (r *cartRepository) CheckoutTx(cartID string, order *orderModel.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CartItem{}).
			Where("cart_id = ? AND purchased = ?", cartID, false).
			Update("purchased", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&model.Cart{}).
			Where("id = ?", cartID).
			Update("discount_percent", 0).Error; err != nil {
			return err
		}

		return tx.Create(order).Error
	})
}
