package service

import (
	"errors"
	"time"

	"course_market/internal/domain/promotion/model"
	"course_market/internal/domain/promotion/repository"
	userModel "course_market/internal/domain/user/model"

	"gorm.io/gorm"
)

// 促销业务错误
// 优惠券未知与未启用在对外响应中合并为同一种失败，内部保持区分便于排查
var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon inactive or expired")
	ErrInvalidDiscount = errors.New("discount percent must be in (0, 100]")
	ErrInvalidKind     = errors.New("unknown offer kind")
	ErrInvalidAudience = errors.New("unknown audience")
)

// OfferParams 创建/更新促销的参数
type OfferParams struct {
	Title           string
	DiscountPercent float64
	Kind            string
	ValidCategories []string
	Audience        string
	Active          bool
	ExpiresAt       *time.Time
}

// PromotionService 促销服务接口
// ActiveFlashSales/ActiveTargetedOffers/LookupCoupon 是定价与购物车依赖的只读查询
type PromotionService interface {
	CreateOffer(params OfferParams) (*model.Offer, error)
	ListOffers(kind string) ([]model.Offer, error)
	UpdateOffer(id string, params OfferParams) (*model.Offer, error)
	DeleteOffer(id string) error

	CreateCoupon(code string, discountPercent float64, expiresAt *time.Time) (*model.Coupon, error)
	ListCoupons() ([]model.Coupon, error)
	DeleteCoupon(id string) error

	ActiveFlashSales(now time.Time) ([]model.Offer, error)
	ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]model.Offer, error)
	LookupCoupon(code string) (*model.Coupon, error)
}

type promotionService struct {
	repo repository.PromotionRepository
}

func NewPromotionService(repo repository.PromotionRepository) PromotionService {
	return &promotionService{repo: repo}
}

func validateParams(params OfferParams) error {
	if params.DiscountPercent <= 0 || params.DiscountPercent > 100 {
		return ErrInvalidDiscount
	}
	if params.Kind != model.KindFlashSale && params.Kind != model.KindTargeted {
		return ErrInvalidKind
	}
	switch params.Audience {
	case model.AudienceAll, string(userModel.SegmentNewUser), string(userModel.SegmentLongTermUser):
		return nil
	default:
		return ErrInvalidAudience
	}
}

func (s *promotionService) CreateOffer(params OfferParams) (*model.Offer, error) {
	if params.Audience == "" {
		params.Audience = model.AudienceAll
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	offer := &model.Offer{
		Title:           params.Title,
		DiscountPercent: params.DiscountPercent,
		Kind:            params.Kind,
		ValidCategories: params.ValidCategories,
		Audience:        params.Audience,
		Active:          params.Active,
		ExpiresAt:       params.ExpiresAt,
	}
	if err := s.repo.CreateOffer(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *promotionService) ListOffers(kind string) ([]model.Offer, error) {
	return s.repo.ListOffers(kind)
}

func (s *promotionService) UpdateOffer(id string, params OfferParams) (*model.Offer, error) {
	if params.Audience == "" {
		params.Audience = model.AudienceAll
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return s.repo.UpdateOffer(id, map[string]interface{}{
		"title":            params.Title,
		"discount_percent": params.DiscountPercent,
		"kind":             params.Kind,
		"valid_categories": model.StringList(params.ValidCategories),
		"audience":         params.Audience,
		"active":           params.Active,
		"expires_at":       params.ExpiresAt,
	})
}

func (s *promotionService) DeleteOffer(id string) error {
	return s.repo.DeleteOffer(id)
}

func (s *promotionService) CreateCoupon(code string, discountPercent float64, expiresAt *time.Time) (*model.Coupon, error) {
	if discountPercent <= 0 || discountPercent > 100 {
		return nil, ErrInvalidDiscount
	}

	coupon := &model.Coupon{
		Code:            code,
		DiscountPercent: discountPercent,
		Active:          true,
		ExpiresAt:       expiresAt,
	}
	if err := s.repo.CreateCoupon(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *promotionService) ListCoupons() ([]model.Coupon, error) {
	return s.repo.ListCoupons()
}

func (s *promotionService) DeleteCoupon(id string) error {
	return s.repo.DeleteCoupon(id)
}

func (s *promotionService) ActiveFlashSales(now time.Time) ([]model.Offer, error) {
	return s.repo.ActiveFlashSales(now)
}

func (s *promotionService) ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]model.Offer, error) {
	return s.repo.ActiveTargetedOffers(segment, now)
}

// LookupCoupon 查询可用的优惠券
// 未启用或已过期的券视同不存在，只是内部错误不同
func (s *promotionService) LookupCoupon(code string) (*model.Coupon, error) {
	coupon, err := s.repo.GetCouponByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if !coupon.Active {
		return nil, ErrCouponInactive
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, ErrCouponInactive
	}
	return coupon, nil
}
