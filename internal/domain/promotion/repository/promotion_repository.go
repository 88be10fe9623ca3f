package repository

import (
	"time"

	"course_market/internal/domain/promotion/model"
	userModel "course_market/internal/domain/user/model"

	"gorm.io/gorm"
)

// PromotionRepository 促销仓储接口
type PromotionRepository interface {
	CreateOffer(offer *model.Offer) error
	GetOffer(id string) (*model.Offer, error)
	ListOffers(kind string) ([]model.Offer, error)
	UpdateOffer(id string, fields map[string]interface{}) (*model.Offer, error)
	DeleteOffer(id string) error

	ActiveFlashSales(now time.Time) ([]model.Offer, error)
	ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]model.Offer, error)

	CreateCoupon(coupon *model.Coupon) error
	ListCoupons() ([]model.Coupon, error)
	DeleteCoupon(id string) error
	GetCouponByCode(code string) (*model.Coupon, error)
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) CreateOffer(offer *model.Offer) error {
	return r.db.Create(offer).Error
}

func (r *promotionRepository) GetOffer(id string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.Where("id = ?", id).First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListOffers 管理端促销列表，kind 为空时返回全部
func (r *promotionRepository) ListOffers(kind string) ([]model.Offer, error) {
	query := r.db.Model(&model.Offer{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var offers []model.Offer
	if err := query.Order("created_at ASC, id ASC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *promotionRepository) UpdateOffer(id string, fields map[string]interface{}) (*model.Offer, error) {
	result := r.db.Model(&model.Offer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOffer(id)
}

func (r *promotionRepository) DeleteOffer(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.Offer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActiveFlashSales 未过期的限时抢购，按创建顺序返回
// 先到先得的首个匹配语义依赖这里的排序
func (r *promotionRepository) ActiveFlashSales(now time.Time) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.
		Where("kind = ?", model.KindFlashSale).
		Where("expires_at IS NULL OR expires_at >= ?", now).
		Order("created_at ASC, id ASC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// ActiveTargetedOffers 对指定用户分层生效的定向促销，按创建顺序返回
func (r *promotionRepository) ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.
		Where("kind = ?", model.KindTargeted).
		Where("active = ?", true).
		Where("audience IN ?", []string{model.AudienceAll, string(segment)}).
		Where("expires_at IS NULL OR expires_at >= ?", now).
		Order("created_at ASC, id ASC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *promotionRepository) CreateCoupon(coupon *model.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *promotionRepository) ListCoupons() ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := r.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *promotionRepository) DeleteCoupon(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *promotionRepository) GetCouponByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}
