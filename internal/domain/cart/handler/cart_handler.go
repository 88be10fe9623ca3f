package handler

import (
	"errors"
	"net/http"

	"course_market/internal/domain/cart/model"
	"course_market/internal/domain/cart/service"
	"course_market/internal/pkg/lock"
	"course_market/internal/pkg/middleware"
	"course_market/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CartHandler 购物车处理器（学员端）
type CartHandler struct {
	service service.CartService
}

func NewCartHandler(service service.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// AddItemInput 加购输入
type AddItemInput struct {
	CourseID string `json:"courseId" binding:"required,uuid"`
}

// CouponInput 应用优惠券输入
type CouponInput struct {
	Code string `json:"code" binding:"required"`
}

// GetCart 查询购物车
// 尚未加购过的用户返回空车而不是报错
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			response.Success(c, gin.H{"items": []model.CartItem{}, "discountPercent": 0, "total": 0})
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{
		"items":           cart.Items,
		"discountPercent": cart.DiscountPercent,
		"total":           cart.Total(),
	})
}

// AddItem 加购课程
// @Summary 加购课程
// @Tags Taker
// @Accept json
// @Produce json
// @Param input body AddItemInput true "Course"
// @Router /taker/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	item, err := h.service.AddCourse(c.Request.Context(), middleware.GetUserID(c), input.CourseID, middleware.GetSegment(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateItem):
			response.Error(c, http.StatusConflict, response.ErrDuplicateItem, "Course already in cart")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.ErrCourseNotFound, "Course not found")
		case errors.Is(err, lock.ErrNotAcquired):
			response.Error(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "Cart busy, please retry")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"item": item})
}

// RemoveItem 移除购物车条目
func (h *CartHandler) RemoveItem(c *gin.Context) {
	err := h.service.RemoveCourse(c.Request.Context(), middleware.GetUserID(c), c.Param("courseId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			response.Error(c, http.StatusNotFound, response.ErrCartNotFound, "Cart not found")
		case errors.Is(err, service.ErrItemNotFound):
			response.Error(c, http.StatusNotFound, response.ErrCartItemNotFound, "Item not found in cart")
		case errors.Is(err, lock.ErrNotAcquired):
			response.Error(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "Cart busy, please retry")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ApplyCoupon 应用优惠券
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var input CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	cart, err := h.service.ApplyCoupon(c.Request.Context(), middleware.GetUserID(c), input.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			response.Error(c, http.StatusNotFound, response.ErrCartNotFound, "Cart not found")
		case errors.Is(err, service.ErrCouponInvalid):
			response.Error(c, http.StatusBadRequest, response.ErrCouponInvalid, "Coupon not found or inactive")
		case errors.Is(err, lock.ErrNotAcquired):
			response.Error(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "Cart busy, please retry")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"discountPercent": cart.DiscountPercent, "total": cart.Total()})
}

// Checkout 结算
// @Summary 结算购物车
// @Tags Taker
// @Produce json
// @Router /taker/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	receipt, err := h.service.Checkout(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			response.Error(c, http.StatusBadRequest, response.ErrEmptyCart, "Cart is empty")
		case errors.Is(err, lock.ErrNotAcquired):
			response.Error(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "Cart busy, please retry")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"receipt": receipt})
}
