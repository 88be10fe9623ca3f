package service

import (
	"context"
	"testing"
	"time"

	"course_market/internal/domain/cart/model"
	courseModel "course_market/internal/domain/course/model"
	orderModel "course_market/internal/domain/order/model"
	promoModel "course_market/internal/domain/promotion/model"
	promoService "course_market/internal/domain/promotion/service"
	userModel "course_market/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCartRepository 购物车仓储 Mock
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUserID(userID string) (*model.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(cart *model.Cart) error {
	args := m.Called(cart)
	return args.Error(0)
}

func (m *MockCartRepository) AddItem(item *model.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) RemoveItem(cartID, courseID string) error {
	args := m.Called(cartID, courseID)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateDiscount(cartID string, percent float64) error {
	args := m.Called(cartID, percent)
	return args.Error(0)
}

func (m *MockCartRepository) CheckoutTx(cartID string, order *orderModel.Order) error {
	args := m.Called(cartID, order)
	return args.Error(0)
}

// MockCatalog 课程查询 Mock
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(id string) (*courseModel.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courseModel.Course), args.Error(1)
}

// MockResolver 定价 Mock
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolvePrice(course *courseModel.Course, segment userModel.Segment, now time.Time) (float64, error) {
	args := m.Called(course, segment, now)
	return args.Get(0).(float64), args.Error(1)
}

// MockCouponLookup 优惠券查询 Mock
type MockCouponLookup struct {
	mock.Mock
}

func (m *MockCouponLookup) LookupCoupon(code string) (*promoModel.Coupon, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promoModel.Coupon), args.Error(1)
}

// noopLocker 测试用互斥锁，直接放行
type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return func() {}, nil
}

type cartFixture struct {
	repo     *MockCartRepository
	catalog  *MockCatalog
	resolver *MockResolver
	coupons  *MockCouponLookup
	svc      CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		repo:     new(MockCartRepository),
		catalog:  new(MockCatalog),
		resolver: new(MockResolver),
		coupons:  new(MockCouponLookup),
	}
	f.svc = NewCartService(f.repo, f.catalog, f.resolver, f.coupons, noopLocker{})
	return f
}

func cartWithID(id string) *model.Cart {
	cart := &model.Cart{UserID: "user-1"}
	cart.ID = id
	return cart
}

func TestAddCourse(t *testing.T) {
	ctx := context.Background()
	course := &courseModel.Course{Category: "music", Price: 100}

	t.Run("首次加购自动建车并冻结价格", func(t *testing.T) {
		f := newCartFixture()
		f.catalog.On("GetByID", "course-1").Return(course, nil)
		f.resolver.On("ResolvePrice", course, userModel.SegmentNewUser, mock.AnythingOfType("time.Time")).Return(72.0, nil)
		f.repo.On("GetByUserID", "user-1").Return(nil, gorm.ErrRecordNotFound)
		f.repo.On("Create", mock.AnythingOfType("*model.Cart")).Return(nil)
		f.repo.On("AddItem", mock.AnythingOfType("*model.CartItem")).Return(nil)

		item, err := f.svc.AddCourse(ctx, "user-1", "course-1", userModel.SegmentNewUser)

		assert.NoError(t, err)
		assert.Equal(t, 72.0, item.PriceAtAdd)
		f.repo.AssertExpectations(t)
	})

	t.Run("未结算条目重复加购被拒绝", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.Items = []model.CartItem{{CourseID: "course-1", PriceAtAdd: 50}}

		f.catalog.On("GetByID", "course-1").Return(course, nil)
		f.resolver.On("ResolvePrice", course, userModel.SegmentNewUser, mock.AnythingOfType("time.Time")).Return(50.0, nil)
		f.repo.On("GetByUserID", "user-1").Return(cart, nil)

		item, err := f.svc.AddCourse(ctx, "user-1", "course-1", userModel.SegmentNewUser)

		assert.ErrorIs(t, err, ErrDuplicateItem)
		assert.Nil(t, item)
		f.repo.AssertNotCalled(t, "AddItem")
	})

	t.Run("已购买的课程允许再次加购", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.Items = []model.CartItem{{CourseID: "course-1", PriceAtAdd: 50, Purchased: true}}

		f.catalog.On("GetByID", "course-1").Return(course, nil)
		f.resolver.On("ResolvePrice", course, userModel.SegmentLongTermUser, mock.AnythingOfType("time.Time")).Return(80.0, nil)
		f.repo.On("GetByUserID", "user-1").Return(cart, nil)
		f.repo.On("AddItem", mock.AnythingOfType("*model.CartItem")).Return(nil)

		item, err := f.svc.AddCourse(ctx, "user-1", "course-1", userModel.SegmentLongTermUser)

		assert.NoError(t, err)
		assert.Equal(t, 80.0, item.PriceAtAdd)
	})

	t.Run("课程不存在", func(t *testing.T) {
		f := newCartFixture()
		f.catalog.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		item, err := f.svc.AddCourse(ctx, "user-1", "missing", userModel.SegmentNewUser)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, item)
	})
}

func TestRemoveCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("购物车不存在", func(t *testing.T) {
		f := newCartFixture()
		f.repo.On("GetByUserID", "user-1").Return(nil, gorm.ErrRecordNotFound)

		err := f.svc.RemoveCourse(ctx, "user-1", "course-1")

		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("条目不存在", func(t *testing.T) {
		f := newCartFixture()
		f.repo.On("GetByUserID", "user-1").Return(cartWithID("cart-1"), nil)
		f.repo.On("RemoveItem", "cart-1", "course-9").Return(gorm.ErrRecordNotFound)

		err := f.svc.RemoveCourse(ctx, "user-1", "course-9")

		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("成功移除", func(t *testing.T) {
		f := newCartFixture()
		f.repo.On("GetByUserID", "user-1").Return(cartWithID("cart-1"), nil)
		f.repo.On("RemoveItem", "cart-1", "course-1").Return(nil)

		assert.NoError(t, f.svc.RemoveCourse(ctx, "user-1", "course-1"))
	})
}

func TestApplyCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("无效券不改动当前折扣", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.DiscountPercent = 15

		f.repo.On("GetByUserID", "user-1").Return(cart, nil)
		f.coupons.On("LookupCoupon", "BOGUS").Return(nil, promoService.ErrCouponNotFound)

		result, err := f.svc.ApplyCoupon(ctx, "user-1", "BOGUS")

		assert.ErrorIs(t, err, ErrCouponInvalid)
		assert.Nil(t, result)
		f.repo.AssertNotCalled(t, "UpdateDiscount")
	})

	t.Run("未启用的券同样视为无效", func(t *testing.T) {
		f := newCartFixture()
		f.repo.On("GetByUserID", "user-1").Return(cartWithID("cart-1"), nil)
		f.coupons.On("LookupCoupon", "OFF10").Return(nil, promoService.ErrCouponInactive)

		_, err := f.svc.ApplyCoupon(ctx, "user-1", "OFF10")

		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("后应用的券覆盖先前的", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.DiscountPercent = 15

		f.repo.On("GetByUserID", "user-1").Return(cart, nil)
		f.coupons.On("LookupCoupon", "SAVE10").Return(&promoModel.Coupon{Code: "SAVE10", DiscountPercent: 10, Active: true}, nil)
		f.repo.On("UpdateDiscount", "cart-1", 10.0).Return(nil)

		result, err := f.svc.ApplyCoupon(ctx, "user-1", "SAVE10")

		assert.NoError(t, err)
		assert.Equal(t, 10.0, result.DiscountPercent)
		f.repo.AssertExpectations(t)
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("购物车不存在视为空车", func(t *testing.T) {
		f := newCartFixture()
		f.repo.On("GetByUserID", "user-1").Return(nil, gorm.ErrRecordNotFound)

		receipt, err := f.svc.Checkout(ctx, "user-1")

		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Nil(t, receipt)
	})

	t.Run("全部条目已购买视为空车", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.Items = []model.CartItem{{CourseID: "course-1", PriceAtAdd: 50, Purchased: true}}

		f.repo.On("GetByUserID", "user-1").Return(cart, nil)

		receipt, err := f.svc.Checkout(ctx, "user-1")

		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Nil(t, receipt)
		f.repo.AssertNotCalled(t, "CheckoutTx")
	})

	t.Run("合计应用券折扣并保留两位小数", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.DiscountPercent = 10
		cart.Items = []model.CartItem{
			{CourseID: "course-1", PriceAtAdd: 50},
			{CourseID: "course-2", PriceAtAdd: 30},
		}

		f.repo.On("GetByUserID", "user-1").Return(cart, nil)
		f.repo.On("CheckoutTx", "cart-1", mock.MatchedBy(func(o *orderModel.Order) bool {
			return o.Amount == 72.0 && o.Status == orderModel.StatusPending && o.UserID == "user-1"
		})).Return(nil)

		receipt, err := f.svc.Checkout(ctx, "user-1")

		// (50 + 30) × 0.9
		assert.NoError(t, err)
		assert.Equal(t, 72.0, receipt.Total)
		assert.NotEmpty(t, receipt.OrderNo)
		f.repo.AssertExpectations(t)
	})

	t.Run("已购买条目不计入合计", func(t *testing.T) {
		f := newCartFixture()
		cart := cartWithID("cart-1")
		cart.Items = []model.CartItem{
			{CourseID: "course-1", PriceAtAdd: 40},
			{CourseID: "course-2", PriceAtAdd: 999, Purchased: true},
		}

		f.repo.On("GetByUserID", "user-1").Return(cart, nil)
		f.repo.On("CheckoutTx", "cart-1", mock.AnythingOfType("*model.Order")).Return(nil)

		receipt, err := f.svc.Checkout(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, 40.0, receipt.Total)
	})
}

func TestCartTotalRounding(t *testing.T) {
	cart := &model.Cart{DiscountPercent: 33.33}
	cart.Items = []model.CartItem{
		{PriceAtAdd: 19.99},
		{PriceAtAdd: 7.5},
	}
	// 27.49 × 0.6667 = 18.327... 四舍五入到分
	assert.Equal(t, 18.33, cart.Total())
}
