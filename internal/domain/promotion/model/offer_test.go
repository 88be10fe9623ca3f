package model

import (
	"testing"
	"time"

	userModel "course_market/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
)

func TestOfferAppliesTo(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("过期促销不适用", func(t *testing.T) {
		expired := now.Add(-time.Minute)
		offer := Offer{Kind: KindFlashSale, Audience: AudienceAll, ExpiresAt: &expired}
		assert.False(t, offer.AppliesTo("music", userModel.SegmentNewUser, now))
	})

	t.Run("无过期时间的促销一直有效", func(t *testing.T) {
		offer := Offer{Kind: KindFlashSale, Audience: AudienceAll}
		assert.True(t, offer.AppliesTo("music", userModel.SegmentNewUser, now))
	})

	t.Run("未启用的定向促销不适用", func(t *testing.T) {
		offer := Offer{Kind: KindTargeted, Audience: AudienceAll, Active: false}
		assert.False(t, offer.AppliesTo("music", userModel.SegmentNewUser, now))
	})

	t.Run("类目列表为空表示全类目", func(t *testing.T) {
		offer := Offer{Kind: KindFlashSale, Audience: AudienceAll}
		assert.True(t, offer.AppliesTo("anything", userModel.SegmentLongTermUser, now))
	})

	t.Run("类目不在列表中不适用", func(t *testing.T) {
		offer := Offer{Kind: KindFlashSale, Audience: AudienceAll, ValidCategories: StringList{"music", "art"}}
		assert.False(t, offer.AppliesTo("programming", userModel.SegmentNewUser, now))
		assert.True(t, offer.AppliesTo("art", userModel.SegmentNewUser, now))
	})

	t.Run("受众按用户分层匹配", func(t *testing.T) {
		offer := Offer{Kind: KindTargeted, Active: true, Audience: string(userModel.SegmentNewUser)}
		assert.True(t, offer.AppliesTo("music", userModel.SegmentNewUser, now))
		assert.False(t, offer.AppliesTo("music", userModel.SegmentLongTermUser, now))
	})
}

func TestStringListScan(t *testing.T) {
	var list StringList
	assert.NoError(t, list.Scan([]byte(`["a","b"]`)))
	assert.True(t, list.Contains("a"))
	assert.False(t, list.Contains("c"))

	var empty StringList
	assert.NoError(t, empty.Scan(nil))
	assert.Len(t, empty, 0)
}
