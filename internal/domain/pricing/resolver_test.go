package pricing

import (
	"testing"
	"time"

	courseModel "course_market/internal/domain/course/model"
	promoModel "course_market/internal/domain/promotion/model"
	userModel "course_market/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPromotionSet 促销集合 Mock
type MockPromotionSet struct {
	mock.Mock
}

func (m *MockPromotionSet) ActiveFlashSales(now time.Time) ([]promoModel.Offer, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promoModel.Offer), args.Error(1)
}

func (m *MockPromotionSet) ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]promoModel.Offer, error) {
	args := m.Called(segment, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promoModel.Offer), args.Error(1)
}

func TestResolvePrice(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	course := &courseModel.Course{Title: "吉他入门", Category: "music", Price: 100}

	t.Run("无适用促销返回标价", func(t *testing.T) {
		promos := new(MockPromotionSet)
		promos.On("ActiveFlashSales", now).Return([]promoModel.Offer{}, nil)
		promos.On("ActiveTargetedOffers", userModel.SegmentNewUser, now).Return([]promoModel.Offer{}, nil)

		price, err := NewResolver(promos).ResolvePrice(course, userModel.SegmentNewUser, now)

		assert.NoError(t, err)
		assert.Equal(t, 100.0, price)
	})

	t.Run("抢购与定向促销依次相乘", func(t *testing.T) {
		promos := new(MockPromotionSet)
		promos.On("ActiveFlashSales", now).Return([]promoModel.Offer{
			{Kind: promoModel.KindFlashSale, Audience: promoModel.AudienceAll, DiscountPercent: 20, ValidCategories: promoModel.StringList{"music"}},
		}, nil)
		promos.On("ActiveTargetedOffers", userModel.SegmentNewUser, now).Return([]promoModel.Offer{
			{Kind: promoModel.KindTargeted, Active: true, Audience: string(userModel.SegmentNewUser), DiscountPercent: 10},
		}, nil)

		price, err := NewResolver(promos).ResolvePrice(course, userModel.SegmentNewUser, now)

		// 100 × 0.8 × 0.9
		assert.NoError(t, err)
		assert.InDelta(t, 72.0, price, 1e-9)
	})

	t.Run("同类促销只取首个匹配", func(t *testing.T) {
		promos := new(MockPromotionSet)
		promos.On("ActiveFlashSales", now).Return([]promoModel.Offer{
			{Kind: promoModel.KindFlashSale, Audience: promoModel.AudienceAll, DiscountPercent: 50, ValidCategories: promoModel.StringList{"art"}},
			{Kind: promoModel.KindFlashSale, Audience: promoModel.AudienceAll, DiscountPercent: 20},
			{Kind: promoModel.KindFlashSale, Audience: promoModel.AudienceAll, DiscountPercent: 30},
		}, nil)
		promos.On("ActiveTargetedOffers", userModel.SegmentLongTermUser, now).Return([]promoModel.Offer{}, nil)

		price, err := NewResolver(promos).ResolvePrice(course, userModel.SegmentLongTermUser, now)

		// 类目不匹配的 50% 被跳过，命中 20% 后不再看 30%
		assert.NoError(t, err)
		assert.InDelta(t, 80.0, price, 1e-9)
	})

	t.Run("定向促销作用在抢购折后价上", func(t *testing.T) {
		promos := new(MockPromotionSet)
		promos.On("ActiveFlashSales", now).Return([]promoModel.Offer{
			{Kind: promoModel.KindFlashSale, Audience: promoModel.AudienceAll, DiscountPercent: 100},
		}, nil)
		promos.On("ActiveTargetedOffers", userModel.SegmentNewUser, now).Return([]promoModel.Offer{
			{Kind: promoModel.KindTargeted, Active: true, Audience: promoModel.AudienceAll, DiscountPercent: 10},
		}, nil)

		price, err := NewResolver(promos).ResolvePrice(course, userModel.SegmentNewUser, now)

		assert.NoError(t, err)
		assert.Equal(t, 0.0, price)
	})

	t.Run("分层不匹配的定向促销被跳过", func(t *testing.T) {
		promos := new(MockPromotionSet)
		promos.On("ActiveFlashSales", now).Return([]promoModel.Offer{}, nil)
		promos.On("ActiveTargetedOffers", userModel.SegmentLongTermUser, now).Return([]promoModel.Offer{
			{Kind: promoModel.KindTargeted, Active: true, Audience: string(userModel.SegmentNewUser), DiscountPercent: 10},
		}, nil)

		price, err := NewResolver(promos).ResolvePrice(course, userModel.SegmentLongTermUser, now)

		assert.NoError(t, err)
		assert.Equal(t, 100.0, price)
	})
}
