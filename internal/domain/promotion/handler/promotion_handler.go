package handler

import (
	"errors"
	"net/http"
	"time"

	"course_market/internal/domain/promotion/model"
	"course_market/internal/domain/promotion/service"
	"course_market/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PromotionHandler 促销管理处理器（管理端）
type PromotionHandler struct {
	service service.PromotionService
}

func NewPromotionHandler(service service.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// OfferInput 促销输入
type OfferInput struct {
	Title           string     `json:"title" binding:"required"`
	DiscountPercent float64    `json:"discountPercent" binding:"required,gt=0,lte=100"`
	Kind            string     `json:"kind"`
	ValidCategories []string   `json:"validCategories"`
	Audience        string     `json:"audience"`
	Active          *bool      `json:"active"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

// CouponInput 优惠券输入
type CouponInput struct {
	Code            string     `json:"code" binding:"required"`
	DiscountPercent float64    `json:"discountPercent" binding:"required,gt=0,lte=100"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

func (in *OfferInput) toParams() service.OfferParams {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return service.OfferParams{
		Title:           in.Title,
		DiscountPercent: in.DiscountPercent,
		Kind:            in.Kind,
		ValidCategories: in.ValidCategories,
		Audience:        in.Audience,
		Active:          active,
		ExpiresAt:       in.ExpiresAt,
	}
}

func (h *PromotionHandler) createOffer(c *gin.Context, kind string) {
	var input OfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	params := input.toParams()
	if kind != "" {
		params.Kind = kind
	}

	offer, err := h.service.CreateOffer(params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDiscount) ||
			errors.Is(err, service.ErrInvalidKind) ||
			errors.Is(err, service.ErrInvalidAudience) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"offer": offer})
}

func (h *PromotionHandler) listOffers(c *gin.Context, kind string) {
	if kind == "" {
		kind = c.Query("kind")
	}
	offers, err := h.service.ListOffers(kind)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"offers": offers})
}

// CreateOffer 创建促销（kind 由请求体指定）
// @Summary 创建促销
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body OfferInput true "Offer Info"
// @Router /admin/offers [post]
func (h *PromotionHandler) CreateOffer(c *gin.Context) {
	h.createOffer(c, "")
}

// ListOffers 促销列表
func (h *PromotionHandler) ListOffers(c *gin.Context) {
	h.listOffers(c, "")
}

// UpdateOffer 更新促销
func (h *PromotionHandler) UpdateOffer(c *gin.Context) {
	var input OfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	offer, err := h.service.UpdateOffer(c.Param("id"), input.toParams())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOfferNotFound, "Offer not found")
			return
		}
		if errors.Is(err, service.ErrInvalidDiscount) ||
			errors.Is(err, service.ErrInvalidKind) ||
			errors.Is(err, service.ErrInvalidAudience) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"offer": offer})
}

// DeleteOffer 删除促销
func (h *PromotionHandler) DeleteOffer(c *gin.Context) {
	if err := h.service.DeleteOffer(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOfferNotFound, "Offer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateFlashSale 创建限时抢购
func (h *PromotionHandler) CreateFlashSale(c *gin.Context) {
	h.createOffer(c, model.KindFlashSale)
}

// ListFlashSales 限时抢购列表
func (h *PromotionHandler) ListFlashSales(c *gin.Context) {
	h.listOffers(c, model.KindFlashSale)
}

// CreateTargetedOffer 创建定向促销
func (h *PromotionHandler) CreateTargetedOffer(c *gin.Context) {
	h.createOffer(c, model.KindTargeted)
}

// ListTargetedOffers 定向促销列表
func (h *PromotionHandler) ListTargetedOffers(c *gin.Context) {
	h.listOffers(c, model.KindTargeted)
}

// CreateCoupon 创建优惠券
func (h *PromotionHandler) CreateCoupon(c *gin.Context) {
	var input CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	coupon, err := h.service.CreateCoupon(input.Code, input.DiscountPercent, input.ExpiresAt)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDiscount) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"coupon": coupon})
}

// ListCoupons 优惠券列表
func (h *PromotionHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.service.ListCoupons()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"coupons": coupons})
}

// DeleteCoupon 删除优惠券
func (h *PromotionHandler) DeleteCoupon(c *gin.Context) {
	if err := h.service.DeleteCoupon(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "Coupon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
