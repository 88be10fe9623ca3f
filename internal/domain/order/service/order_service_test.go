package service

import (
	"encoding/json"
	"testing"
	"time"

	"course_market/internal/domain/order/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockOrderRepository 订单仓储 Mock
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByNo(orderNo string) (*model.Order, error) {
	args := m.Called(orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUser(userID string) ([]model.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(orderNo string, status string, channel string, paidAt *time.Time, extra json.RawMessage) error {
	args := m.Called(orderNo, status, channel, paidAt, extra)
	return args.Error(0)
}

// fakeStrategy 固定返回的支付策略
type fakeStrategy struct {
	payParam string
	orderNo  string
	amount   float64
	success  bool
}

func (f *fakeStrategy) Pay(orderNo string, amount float64, subject string) (string, error) {
	return f.payParam, nil
}

func (f *fakeStrategy) Notify(params interface{}) (string, float64, bool, error) {
	return f.orderNo, f.amount, f.success, nil
}

func TestPay(t *testing.T) {
	t.Run("未注册的渠道", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)

		_, err := svc.Pay("user-1", "ORD1", "alipay")

		assert.ErrorIs(t, err, ErrUnsupportedChannel)
	})

	t.Run("订单不存在", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)
		svc.RegisterStrategy("alipay", &fakeStrategy{})

		mockRepo.On("GetByNo", "ORD1").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Pay("user-1", "ORD1", "alipay")

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("他人的订单按不存在处理", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)
		svc.RegisterStrategy("alipay", &fakeStrategy{})

		mockRepo.On("GetByNo", "ORD1").Return(&model.Order{OrderNo: "ORD1", UserID: "other", Status: model.StatusPending}, nil)

		_, err := svc.Pay("user-1", "ORD1", "alipay")

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("已支付订单不可再次支付", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)
		svc.RegisterStrategy("alipay", &fakeStrategy{})

		mockRepo.On("GetByNo", "ORD1").Return(&model.Order{OrderNo: "ORD1", UserID: "user-1", Status: model.StatusPaid}, nil)

		_, err := svc.Pay("user-1", "ORD1", "alipay")

		assert.ErrorIs(t, err, ErrOrderNotPayable)
	})

	t.Run("成功返回支付参数", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)
		svc.RegisterStrategy("alipay", &fakeStrategy{payParam: "https://pay.example.com/x"})

		mockRepo.On("GetByNo", "ORD1").Return(&model.Order{OrderNo: "ORD1", UserID: "user-1", Amount: 72, Status: model.StatusPending}, nil)
		mockRepo.On("UpdateStatus", "ORD1", model.StatusPending, "alipay", (*time.Time)(nil), json.RawMessage(nil)).Return(nil)

		payParam, err := svc.Pay("user-1", "ORD1", "alipay")

		assert.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/x", payParam)
		mockRepo.AssertExpectations(t)
	})
}

func TestHandleNotify(t *testing.T) {
	t.Run("支付成功更新订单", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)
		svc.RegisterStrategy("alipay", &fakeStrategy{orderNo: "ORD1", amount: 72, success: true})

		mockRepo.On("UpdateStatus", "ORD1", model.StatusPaid, "alipay", mock.AnythingOfType("*time.Time"), mock.Anything).Return(nil)
		mockRepo.On("GetByNo", "ORD1").Return(&model.Order{OrderNo: "ORD1", UserID: "user-1"}, nil)

		err := svc.HandleNotify("alipay", nil)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("支付失败置为取消", func(t *testing.T) {
		mockRepo := new(MockOrderRepository)
		svc := NewOrderService(mockRepo)
		svc.RegisterStrategy("alipay", &fakeStrategy{orderNo: "ORD1", success: false})

		mockRepo.On("UpdateStatus", "ORD1", model.StatusCancelled, "alipay", (*time.Time)(nil), json.RawMessage(nil)).Return(nil)

		err := svc.HandleNotify("alipay", nil)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
