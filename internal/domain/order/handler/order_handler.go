package handler

import (
	"errors"
	"net/http"

	"course_market/internal/domain/order/service"
	"course_market/internal/pkg/middleware"
	"course_market/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// PayInput 发起支付输入
type PayInput struct {
	OrderNo string `json:"orderNo" binding:"required"`
	Channel string `json:"channel" binding:"required,oneof=alipay wechat"`
}

// ListOrders 当前用户的订单列表
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// Pay 对待支付订单发起支付
// @Summary 发起支付
// @Tags Taker
// @Accept json
// @Produce json
// @Param input body PayInput true "Order"
// @Router /taker/orders/pay [post]
func (h *OrderHandler) Pay(c *gin.Context) {
	var input PayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	payParam, err := h.service.Pay(middleware.GetUserID(c), input.OrderNo, input.Channel)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderNotPayable):
			response.Error(c, http.StatusBadRequest, response.ErrOrderNotFound, "Order is not payable")
		case errors.Is(err, service.ErrUnsupportedChannel):
			response.Error(c, http.StatusBadRequest, response.ErrUnsupportedChannel, "Unsupported payment channel")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"orderNo": input.OrderNo, "payParam": payParam})
}

// AlipayNotify 支付宝回调
// @Summary 支付宝回调
// @Tags Payment
// @Router /payment/notify/alipay [post]
func (h *OrderHandler) AlipayNotify(c *gin.Context) {
	// 支付宝回调是 POST Form 格式
	c.Request.ParseForm()
	if err := h.service.HandleNotify("alipay", c.Request.Form); err != nil {
		c.String(http.StatusOK, "fail") // 告诉支付宝处理失败，它会重试
		return
	}
	c.String(http.StatusOK, "success")
}

// WechatNotify 微信支付回调
// @Summary 微信支付回调
// @Tags Payment
// @Router /payment/notify/wechat [post]
func (h *OrderHandler) WechatNotify(c *gin.Context) {
	// 微信支付回调是 JSON 格式，签名信息在 Header 里，整个请求交给策略处理
	if err := h.service.HandleNotify("wechat", c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FAIL", "message": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
