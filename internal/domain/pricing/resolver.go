package pricing

import (
	"time"

	courseModel "course_market/internal/domain/course/model"
	promoModel "course_market/internal/domain/promotion/model"
	userModel "course_market/internal/domain/user/model"
)

// PromotionSet 定价所需的活跃促销查询
// 解析器只依赖这个接口，不关心促销来自数据库还是缓存快照
type PromotionSet interface {
	ActiveFlashSales(now time.Time) ([]promoModel.Offer, error)
	ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]promoModel.Offer, error)
}

// Resolver 价格解析器
// 结算规则：标价先乘首个适用的限时抢购折扣，再乘首个适用的定向促销折扣
// 每类促销只取创建顺序中第一个匹配的，不叠加同类促销
type Resolver struct {
	promos PromotionSet
}

func NewResolver(promos PromotionSet) *Resolver {
	return &Resolver{promos: promos}
}

// ResolvePrice 计算课程对指定用户分层在 now 时刻的成交价
// 无适用促销时返回标价；结果不做舍入，汇总时统一处理
func (r *Resolver) ResolvePrice(course *courseModel.Course, segment userModel.Segment, now time.Time) (float64, error) {
	price := course.Price

	flashSales, err := r.promos.ActiveFlashSales(now)
	if err != nil {
		return 0, err
	}
	if offer := firstApplicable(flashSales, course.Category, segment, now); offer != nil {
		price *= 1 - offer.DiscountPercent/100
	}

	targeted, err := r.promos.ActiveTargetedOffers(segment, now)
	if err != nil {
		return 0, err
	}
	if offer := firstApplicable(targeted, course.Category, segment, now); offer != nil {
		price *= 1 - offer.DiscountPercent/100
	}

	if price < 0 {
		price = 0
	}
	return price, nil
}

func firstApplicable(offers []promoModel.Offer, category string, segment userModel.Segment, now time.Time) *promoModel.Offer {
	for i := range offers {
		if offers[i].AppliesTo(category, segment, now) {
			return &offers[i]
		}
	}
	return nil
}
