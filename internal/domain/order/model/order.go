package model

import (
	"time"

	baseModel "course_market/pkg/model"
)

// 订单状态
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// 支付渠道
const (
	ChannelAlipay = "alipay"
	ChannelWechat = "wechat"
)

// Order 订单
// 结算时以 pending 状态落库，作为购买凭据；支付回调后置为 paid
type Order struct {
	baseModel.BaseModel
	OrderNo     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderNo"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"userId"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Channel     string     `gorm:"type:varchar(20)" json:"channel"`
	Subject     string     `gorm:"type:varchar(255)" json:"subject"`
	PaidAt      *time.Time `json:"paidAt"`
	ExtraParams string     `gorm:"type:text" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
