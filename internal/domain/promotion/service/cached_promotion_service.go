package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"course_market/internal/domain/promotion/model"
	userModel "course_market/internal/domain/user/model"
	"course_market/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 缓存键常量
// 加购时价格即冻结，短暂读到旧的促销快照是可接受的
const (
	FlashSaleCacheKey      = "promo:flash_sales"
	TargetedCacheKeyPrefix = "promo:targeted:"
	PromoSnapshotTTL       = time.Minute
)

// CachedPromotionService 带 Redis 快照缓存的促销服务
// 只缓存活跃促销列表这两条热路径，管理端写操作直接失效快照
type CachedPromotionService struct {
	PromotionService
	rdb *redis.Client
}

func NewCachedPromotionService(inner PromotionService, rdb *redis.Client) PromotionService {
	return &CachedPromotionService{
		PromotionService: inner,
		rdb:              rdb,
	}
}

func targetedCacheKey(segment userModel.Segment) string {
	return fmt.Sprintf("%s%s", TargetedCacheKeyPrefix, segment)
}

// ActiveFlashSales 活跃限时抢购（带缓存）
// 快照内可能混入刚过期的记录，调用方按当前时间重新判定适用性
func (s *CachedPromotionService) ActiveFlashSales(now time.Time) ([]model.Offer, error) {
	ctx := context.Background()

	if data, err := s.rdb.Get(ctx, FlashSaleCacheKey).Bytes(); err == nil {
		var offers []model.Offer
		if err := json.Unmarshal(data, &offers); err == nil {
			return offers, nil
		}
	}

	offers, err := s.PromotionService.ActiveFlashSales(now)
	if err != nil {
		return nil, err
	}

	s.cacheSnapshot(ctx, FlashSaleCacheKey, offers)
	return offers, nil
}

// ActiveTargetedOffers 活跃定向促销（按用户分层缓存）
func (s *CachedPromotionService) ActiveTargetedOffers(segment userModel.Segment, now time.Time) ([]model.Offer, error) {
	ctx := context.Background()
	key := targetedCacheKey(segment)

	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var offers []model.Offer
		if err := json.Unmarshal(data, &offers); err == nil {
			return offers, nil
		}
	}

	offers, err := s.PromotionService.ActiveTargetedOffers(segment, now)
	if err != nil {
		return nil, err
	}

	s.cacheSnapshot(ctx, key, offers)
	return offers, nil
}

func (s *CachedPromotionService) cacheSnapshot(ctx context.Context, key string, offers []model.Offer) {
	data, err := json.Marshal(offers)
	if err != nil {
		return
	}
	// 缓存失败不影响业务逻辑，只记录日志
	if err := s.rdb.Set(ctx, key, data, PromoSnapshotTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache promotion snapshot", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedPromotionService) invalidateSnapshots() {
	ctx := context.Background()
	keys := []string{
		FlashSaleCacheKey,
		targetedCacheKey(userModel.SegmentNewUser),
		targetedCacheKey(userModel.SegmentLongTermUser),
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate promotion snapshot", zap.Error(err))
	}
}

// CreateOffer 创建促销并失效快照
func (s *CachedPromotionService) CreateOffer(params OfferParams) (*model.Offer, error) {
	offer, err := s.PromotionService.CreateOffer(params)
	if err != nil {
		return nil, err
	}
	s.invalidateSnapshots()
	return offer, nil
}

// UpdateOffer 更新促销并失效快照
func (s *CachedPromotionService) UpdateOffer(id string, params OfferParams) (*model.Offer, error) {
	offer, err := s.PromotionService.UpdateOffer(id, params)
	if err != nil {
		return nil, err
	}
	s.invalidateSnapshots()
	return offer, nil
}

// DeleteOffer 删除促销并失效快照
func (s *CachedPromotionService) DeleteOffer(id string) error {
	if err := s.PromotionService.DeleteOffer(id); err != nil {
		return err
	}
	s.invalidateSnapshots()
	return nil
}
