package service

import "errors"

// 购物车业务错误
var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrItemNotFound  = errors.New("item not found in cart")
	ErrDuplicateItem = errors.New("course already in cart")
	ErrEmptyCart     = errors.New("cart is empty")

	// ErrCouponInvalid 对外统一的优惠券失败：不存在与未启用不做区分
	ErrCouponInvalid = errors.New("coupon not found or inactive")
)
