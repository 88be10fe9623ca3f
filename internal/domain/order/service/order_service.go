package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"course_market/internal/domain/order/model"
	"course_market/internal/domain/order/repository"
	"course_market/internal/domain/order/strategy"
	"course_market/internal/pkg/push"
	"course_market/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 订单业务错误
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPayable    = errors.New("order is not payable")
	ErrUnsupportedChannel = errors.New("unsupported payment channel")
)

// OrderService 订单服务接口
type OrderService interface {
	ListOrders(userID string) ([]model.Order, error)
	Pay(userID, orderNo, channel string) (string, error)
	HandleNotify(channel string, params interface{}) error
	RegisterStrategy(channel string, strategy strategy.PaymentStrategy)
}

type orderService struct {
	repo       repository.OrderRepository
	strategies map[string]strategy.PaymentStrategy
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{
		repo:       repo,
		strategies: make(map[string]strategy.PaymentStrategy),
	}
}

// RegisterStrategy 注册支付策略
func (s *orderService) RegisterStrategy(channel string, st strategy.PaymentStrategy) {
	s.strategies[channel] = st
}

func (s *orderService) ListOrders(userID string) ([]model.Order, error) {
	return s.repo.GetByUser(userID)
}

// Pay 对结算生成的待支付订单发起支付，返回渠道支付参数
func (s *orderService) Pay(userID, orderNo, channel string) (string, error) {
	st, ok := s.strategies[channel]
	if !ok {
		return "", ErrUnsupportedChannel
	}

	// 1. 校验订单归属与状态
	order, err := s.repo.GetByNo(orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	if order.UserID != userID {
		return "", ErrOrderNotFound
	}
	if order.Status != model.StatusPending {
		return "", ErrOrderNotPayable
	}

	// 2. 记录所选渠道
	if err := s.repo.UpdateStatus(orderNo, model.StatusPending, channel, nil, nil); err != nil {
		return "", err
	}

	// 3. 调用支付策略获取支付参数
	return st.Pay(orderNo, order.Amount, order.Subject)
}

// HandleNotify 处理支付渠道回调
func (s *orderService) HandleNotify(channel string, params interface{}) error {
	st, ok := s.strategies[channel]
	if !ok {
		return ErrUnsupportedChannel
	}

	// 1. 验签并解析回调参数
	orderNo, _, success, err := st.Notify(params)
	if err != nil {
		return err
	}

	if !success {
		return s.repo.UpdateStatus(orderNo, model.StatusCancelled, channel, nil, nil)
	}

	// 2. 更新订单状态，原始回调参数存入 extra_params 备查
	now := time.Now()
	extraJSON, _ := json.Marshal(params)
	if err := s.repo.UpdateStatus(orderNo, model.StatusPaid, channel, &now, extraJSON); err != nil {
		return err
	}

	order, err := s.repo.GetByNo(orderNo)
	if err != nil {
		logger.Log.Error("Order paid but lookup failed", zap.String("orderNo", orderNo), zap.Error(err))
		return err
	}

	// 3. 推送支付成功通知
	if push.GlobalPushService != nil {
		title := "支付成功"
		body := fmt.Sprintf("您的订单 %s 已支付成功，课程已解锁。", orderNo)
		go push.GlobalPushService.PushToAccount(order.UserID, title, body, nil)
	}

	return nil
}
