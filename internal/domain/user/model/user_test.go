package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSegmentAt(t *testing.T) {
	now := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("注册不满一个月是新用户", func(t *testing.T) {
		u := User{}
		u.CreatedAt = now.AddDate(0, 0, -10)
		assert.Equal(t, SegmentNewUser, u.SegmentAt(now))
	})

	t.Run("注册满一个月是老用户", func(t *testing.T) {
		u := User{}
		u.CreatedAt = now.AddDate(0, -2, 0)
		assert.Equal(t, SegmentLongTermUser, u.SegmentAt(now))
	})

	t.Run("恰好一个月按老用户处理", func(t *testing.T) {
		u := User{}
		u.CreatedAt = now.AddDate(0, -1, 0)
		assert.Equal(t, SegmentLongTermUser, u.SegmentAt(now))
	})
}
