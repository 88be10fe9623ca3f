package service

import (
	"testing"
	"time"

	"course_market/internal/domain/promotion/model"
	userModel "course_market/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPromotionRepository 促销仓储 Mock
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) CreateOffer(offer *model.Offer) error {
	args := m.Called(offer)
	return args.Error(0)
}

func (m *MockPromotionRepository) GetOffer(id string) (*model.Offer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockPromotionRepository) ListOffers(kind string) ([]model.Offer, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockPromotionRepository) UpdateOffer(id string, fields map[string]interface{}) (*model.Offer, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockPromotionRepository) DeleteOffer(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPromotionRepository) ActiveFlashSales(now time.Time) ([]model.Offer, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockPromotionRepository) ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]model.Offer, error) {
	args := m.Called(segment, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockPromotionRepository) CreateCoupon(coupon *model.Coupon) error {
	args := m.Called(coupon)
	return args.Error(0)
}

func (m *MockPromotionRepository) ListCoupons() ([]model.Coupon, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockPromotionRepository) DeleteCoupon(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPromotionRepository) GetCouponByCode(code string) (*model.Coupon, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func TestCreateOffer(t *testing.T) {
	t.Run("折扣越界被拒绝", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		_, err := svc.CreateOffer(OfferParams{
			Title:           "坏折扣",
			DiscountPercent: 120,
			Kind:            model.KindFlashSale,
		})

		assert.ErrorIs(t, err, ErrInvalidDiscount)
		mockRepo.AssertNotCalled(t, "CreateOffer")
	})

	t.Run("未知类型被拒绝", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		_, err := svc.CreateOffer(OfferParams{
			Title:           "坏类型",
			DiscountPercent: 10,
			Kind:            "mystery",
		})

		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("受众缺省为全员", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		mockRepo.On("CreateOffer", mock.AnythingOfType("*model.Offer")).Return(nil)

		offer, err := svc.CreateOffer(OfferParams{
			Title:           "秋季抢购",
			DiscountPercent: 20,
			Kind:            model.KindFlashSale,
			Active:          true,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.AudienceAll, offer.Audience)
		mockRepo.AssertExpectations(t)
	})
}

func TestLookupCoupon(t *testing.T) {
	t.Run("不存在的券", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		mockRepo.On("GetCouponByCode", "NOPE").Return(nil, gorm.ErrRecordNotFound)

		coupon, err := svc.LookupCoupon("NOPE")

		assert.ErrorIs(t, err, ErrCouponNotFound)
		assert.Nil(t, coupon)
	})

	t.Run("未启用的券", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		mockRepo.On("GetCouponByCode", "OFF10").Return(&model.Coupon{Code: "OFF10", DiscountPercent: 10, Active: false}, nil)

		coupon, err := svc.LookupCoupon("OFF10")

		assert.ErrorIs(t, err, ErrCouponInactive)
		assert.Nil(t, coupon)
	})

	t.Run("已过期的券", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		expired := time.Now().Add(-time.Hour)
		mockRepo.On("GetCouponByCode", "OLD").Return(&model.Coupon{Code: "OLD", DiscountPercent: 10, Active: true, ExpiresAt: &expired}, nil)

		coupon, err := svc.LookupCoupon("OLD")

		assert.ErrorIs(t, err, ErrCouponInactive)
		assert.Nil(t, coupon)
	})

	t.Run("可用的券", func(t *testing.T) {
		mockRepo := new(MockPromotionRepository)
		svc := NewPromotionService(mockRepo)

		mockRepo.On("GetCouponByCode", "SAVE10").Return(&model.Coupon{Code: "SAVE10", DiscountPercent: 10, Active: true}, nil)

		coupon, err := svc.LookupCoupon("SAVE10")

		assert.NoError(t, err)
		assert.Equal(t, 10.0, coupon.DiscountPercent)
	})
}
