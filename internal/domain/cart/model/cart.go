package model

import (
	"math"

	baseModel "course_market/pkg/model"
)

// Cart 购物车，每个用户至多一个
// DiscountPercent 为当前生效的优惠券折扣，后应用的覆盖先应用的
type Cart struct {
	baseModel.BaseModel
	UserID          string     `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	DiscountPercent float64    `gorm:"not null;default:0" json:"discountPercent"`
	Items           []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

// CartItem 购物车条目
// PriceAtAdd 是加购时刻解析出的成交价，此后促销变动不影响它
// Purchased 标记结算完成的条目，保留作为购买记录
type CartItem struct {
	baseModel.BaseModel
	CartID     string  `gorm:"type:uuid;index;not null" json:"cartId"`
	CourseID   string  `gorm:"type:uuid;index;not null" json:"courseId"`
	PriceAtAdd float64 `gorm:"not null" json:"priceAtAdd"`
	Purchased  bool    `gorm:"not null;default:false;index" json:"purchased"`
}

// PendingItems 未结算的条目
func (c *Cart) PendingItems() []CartItem {
	var pending []CartItem
	for _, item := range c.Items {
		if !item.Purchased {
			pending = append(pending, item)
		}
	}
	return pending
}

// HasPendingCourse 判断课程是否已在未结算条目中
// 已购买的课程允许再次加购
func (c *Cart) HasPendingCourse(courseID string) bool {
	for _, item := range c.Items {
		if !item.Purchased && item.CourseID == courseID {
			return true
		}
	}
	return false
}

// Total 未结算条目合计，应用券折扣后保留两位小数
func (c *Cart) Total() float64 {
	var sum float64
	for _, item := range c.Items {
		if !item.Purchased {
			sum += item.PriceAtAdd
		}
	}
	total := sum * (1 - c.DiscountPercent/100)
	return math.Round(total*100) / 100
}
