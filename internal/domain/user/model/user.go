package model

import (
	"time"

	baseModel "course_market/pkg/model"
)

// 角色常量
const (
	RoleAdmin   = "admin"
	RoleCreator = "creator"
	RoleTaker   = "taker"
)

// Segment 用户分层，用于定向优惠匹配
type Segment string

const (
	SegmentNewUser      Segment = "new_users"       // 注册未满一个月
	SegmentLongTermUser Segment = "long_term_users" // 注册满一个月
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	Username string `gorm:"type:varchar(100);not null" json:"username"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // 密码不返回给前端
	Role     string `gorm:"type:varchar(20);default:'taker'" json:"role"`
}

// Segment 按账龄推导用户分层：注册未满一个月为新用户
func (u *User) Segment() Segment {
	return u.SegmentAt(time.Now())
}

// SegmentAt 在给定时间点推导用户分层（测试用）
func (u *User) SegmentAt(now time.Time) Segment {
	oneMonthAgo := now.AddDate(0, -1, 0)
	if u.CreatedAt.After(oneMonthAgo) {
		return SegmentNewUser
	}
	return SegmentLongTermUser
}
