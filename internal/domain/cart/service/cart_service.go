package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"course_market/internal/domain/cart/model"
	"course_market/internal/domain/cart/repository"
	courseModel "course_market/internal/domain/course/model"
	orderModel "course_market/internal/domain/order/model"
	promoModel "course_market/internal/domain/promotion/model"
	promoService "course_market/internal/domain/promotion/service"
	userModel "course_market/internal/domain/user/model"
	"course_market/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 锁参数：读改写序列很短，TTL 给足余量防止持有者崩溃后死锁
const (
	cartLockPrefix = "cart:lock:"
	cartLockTTL    = 5 * time.Second
)

// CourseCatalog 购物车需要的课程查询
type CourseCatalog interface {
	GetByID(id string) (*courseModel.Course, error)
}

// PriceResolver 成交价解析
type PriceResolver interface {
	ResolvePrice(course *courseModel.Course, segment userModel.Segment, now time.Time) (float64, error)
}

// CouponLookup 优惠券查询
type CouponLookup interface {
	LookupCoupon(code string) (*promoModel.Coupon, error)
}

// Locker 按键互斥锁
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Receipt 结算回执
type Receipt struct {
	OrderNo string  `json:"orderNo"`
	Total   float64 `json:"total"`
}

// CartService 购物车服务接口
type CartService interface {
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	AddCourse(ctx context.Context, userID, courseID string, segment userModel.Segment) (*model.CartItem, error)
	RemoveCourse(ctx context.Context, userID, courseID string) error
	ApplyCoupon(ctx context.Context, userID, code string) (*model.Cart, error)
	Checkout(ctx context.Context, userID string) (*Receipt, error)
}

type cartService struct {
	repo     repository.CartRepository
	courses  CourseCatalog
	resolver PriceResolver
	coupons  CouponLookup
	locker   Locker
}

func NewCartService(
	repo repository.CartRepository,
	courses CourseCatalog,
	resolver PriceResolver,
	coupons CouponLookup,
	locker Locker,
) CartService {
	return &cartService{
		repo:     repo,
		courses:  courses,
		resolver: resolver,
		coupons:  coupons,
		locker:   locker,
	}
}

func (s *cartService) lockCart(ctx context.Context, userID string) (func(), error) {
	return s.locker.Acquire(ctx, cartLockPrefix+userID, cartLockTTL)
}

// GetCart 查询当前用户的购物车
func (s *cartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

// AddCourse 加购课程
// 成交价在这里解析并冻结；同一课程未结算时重复加购被拒绝
func (s *cartService) AddCourse(ctx context.Context, userID, courseID string, segment userModel.Segment) (*model.CartItem, error) {
	release, err := s.lockCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	// 1. 课程必须存在
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	// 2. 解析加购时刻的成交价
	price, err := s.resolver.ResolvePrice(course, segment, time.Now())
	if err != nil {
		return nil, err
	}

	// 3. 取或建购物车（每用户至多一个）
	cart, err := s.repo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cart = &model.Cart{UserID: userID}
		if err := s.repo.Create(cart); err != nil {
			return nil, err
		}
	}

	// 4. 重复加购检查只看未结算条目，买过的课程可以再买
	if cart.HasPendingCourse(courseID) {
		return nil, ErrDuplicateItem
	}

	item := &model.CartItem{
		CartID:     cart.ID,
		CourseID:   courseID,
		PriceAtAdd: price,
	}
	if err := s.repo.AddItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveCourse 移除未结算的课程
func (s *cartService) RemoveCourse(ctx context.Context, userID, courseID string) error {
	release, err := s.lockCart(ctx, userID)
	if err != nil {
		return err
	}
	defer release()

	cart, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}

	if err := s.repo.RemoveItem(cart.ID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// ApplyCoupon 应用优惠券，后应用的覆盖先前的
// 券无效时不改动当前折扣
func (s *cartService) ApplyCoupon(ctx context.Context, userID, code string) (*model.Cart, error) {
	release, err := s.lockCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	coupon, err := s.coupons.LookupCoupon(code)
	if err != nil {
		if errors.Is(err, promoService.ErrCouponNotFound) || errors.Is(err, promoService.ErrCouponInactive) {
			return nil, ErrCouponInvalid
		}
		return nil, err
	}

	if err := s.repo.UpdateDiscount(cart.ID, coupon.DiscountPercent); err != nil {
		return nil, err
	}
	cart.DiscountPercent = coupon.DiscountPercent
	return cart, nil
}

// Checkout 结算
// 合计、条目标记已购买、订单落库在同一事务内完成
func (s *cartService) Checkout(ctx context.Context, userID string) (*Receipt, error) {
	release, err := s.lockCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.CheckoutTotal.WithLabelValues("empty_cart").Inc()
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	pending := cart.PendingItems()
	if len(pending) == 0 {
		metrics.CheckoutTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	total := cart.Total()
	order := &orderModel.Order{
		OrderNo: generateOrderNo(),
		UserID:  userID,
		Amount:  total,
		Status:  orderModel.StatusPending,
		Subject: fmt.Sprintf("Course purchase (%d items)", len(pending)),
	}

	if err := s.repo.CheckoutTx(cart.ID, order); err != nil {
		metrics.CheckoutTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.CheckoutTotal.WithLabelValues("success").Inc()
	return &Receipt{OrderNo: order.OrderNo, Total: total}, nil
}

// generateOrderNo 订单号：时间戳 + 随机后缀
func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD%s%s", time.Now().Format("20060102150405"), suffix)
}
