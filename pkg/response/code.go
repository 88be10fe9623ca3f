package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// 课程模块错误 200xx
	ErrCourseNotFound = 20001

	// 促销模块错误 210xx
	ErrOfferNotFound  = 21001
	ErrCouponNotFound = 21002

	// 购物车模块错误 300xx
	ErrCartNotFound     = 30001
	ErrDuplicateItem    = 30002
	ErrEmptyCart        = 30003
	ErrCartItemNotFound = 30004
	ErrCouponInvalid    = 30005

	// 订单模块错误 400xx
	ErrOrderNotFound      = 40001
	ErrUnsupportedChannel = 40002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
