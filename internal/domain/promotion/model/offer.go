package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	userModel "course_market/internal/domain/user/model"
	baseModel "course_market/pkg/model"
)

// 促销类型
const (
	KindFlashSale = "flash_sale" // 限时抢购，面向全员
	KindTargeted  = "targeted"   // 定向促销，面向指定用户分层
)

// 受众取值
const (
	AudienceAll = "all"
)

// StringList 以 JSON 形式持久化的字符串列表
type StringList []string

// Value 实现 driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Contains 判断列表是否包含指定值
func (s StringList) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Offer 促销活动
// ValidCategories 为空表示适用所有类目；ExpiresAt 为空表示永不过期
type Offer struct {
	baseModel.BaseModel
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	DiscountPercent float64    `gorm:"not null;check:discount_percent > 0 AND discount_percent <= 100" json:"discountPercent"`
	Kind            string     `gorm:"type:varchar(20);index;not null" json:"kind"`
	ValidCategories StringList `gorm:"type:text" json:"validCategories"`
	Audience        string     `gorm:"type:varchar(30);not null;default:'all'" json:"audience"`
	Active          bool       `gorm:"not null;default:true" json:"active"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

func (Offer) TableName() string {
	return "offers"
}

// AppliesTo 判断促销是否适用于指定课程类目与用户分层
// 过期在读取时按当前时间判定，不依赖后台任务
func (o *Offer) AppliesTo(category string, segment userModel.Segment, now time.Time) bool {
	if o.ExpiresAt != nil && o.ExpiresAt.Before(now) {
		return false
	}
	// 定向促销必须处于启用状态，限时抢购按有效期生效
	if o.Kind == KindTargeted && !o.Active {
		return false
	}
	if len(o.ValidCategories) > 0 && !o.ValidCategories.Contains(category) {
		return false
	}
	if o.Audience == "" || o.Audience == AudienceAll {
		return true
	}
	return o.Audience == string(segment)
}

// Coupon 优惠券
type Coupon struct {
	baseModel.BaseModel
	Code            string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	DiscountPercent float64    `gorm:"not null;check:discount_percent > 0 AND discount_percent <= 100" json:"discountPercent"`
	Active          bool       `gorm:"not null;default:true" json:"active"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

func (Coupon) TableName() string {
	return "coupons"
}
