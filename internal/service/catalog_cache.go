package service

import (
	"context"
	"edunity_backend/internal/model"
	"edunity_backend/pkg/logger"
	"edunity_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const catalogKeyPrefix = "study:catalog:"

// CatalogReader 读取课程的有效目录快照
type CatalogReader interface {
	LoadCatalog(ctx context.Context, courseID uint) (*model.CourseCatalog, error)
}

// CatalogVersioner 返回课程目录的版本标识，目录任何变更都会改变它
type CatalogVersioner interface {
	CatalogVersion(ctx context.Context, courseID uint) (string, error)
}

// CatalogSource 可缓存的目录来源
type CatalogSource interface {
	CatalogReader
	CatalogVersioner
}

// CatalogStore 快照存储，未命中时返回 redis.Nil
type CatalogStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisCatalogStore struct {
	rdb *redis.Client
}

func (s redisCatalogStore) Get(ctx context.Context, key string) (string, error) {
	return s.rdb.Get(ctx, key).Result()
}

func (s redisCatalogStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s redisCatalogStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

type catalogEntry struct {
	Version string               `json:"version"`
	Catalog *model.CourseCatalog `json:"catalog"`
}

// CachedCatalog 目录快照与用户无关，按课程缓存。每次读取先查版本，
// 版本不一致的快照视为未命中，后台直接改库也不会读到已下线的内容
type CachedCatalog struct {
	Source CatalogSource
	Store  CatalogStore
	TTL    time.Duration
}

// NewCachedCatalog 没有 Redis 或 TTL 不大于 0 时不启用缓存
func NewCachedCatalog(source CatalogSource, rdb *redis.Client, ttl time.Duration) CatalogReader {
	if rdb == nil || ttl <= 0 {
		return source
	}
	return &CachedCatalog{Source: source, Store: redisCatalogStore{rdb: rdb}, TTL: ttl}
}

func catalogKey(courseID uint) string {
	return fmt.Sprintf("%s%d", catalogKeyPrefix, courseID)
}

func (c *CachedCatalog) LoadCatalog(ctx context.Context, courseID uint) (*model.CourseCatalog, error) {
	version, err := c.Source.CatalogVersion(ctx, courseID)
	if err != nil {
		// 拿不到版本时无法判断快照是否过期，直接回源
		monitoring.CatalogCache.WithLabelValues("error").Inc()
		logger.Log.Warn("catalog version failed", zap.Uint("courseId", courseID), zap.Error(err))
		return c.Source.LoadCatalog(ctx, courseID)
	}

	key := catalogKey(courseID)
	val, err := c.Store.Get(ctx, key)
	switch {
	case err == redis.Nil:
		monitoring.CatalogCache.WithLabelValues("miss").Inc()
	case err != nil:
		monitoring.CatalogCache.WithLabelValues("error").Inc()
		logger.Log.Warn("catalog cache read failed", zap.Uint("courseId", courseID), zap.Error(err))
	default:
		var entry catalogEntry
		switch {
		case json.Unmarshal([]byte(val), &entry) != nil || entry.Catalog == nil:
			monitoring.CatalogCache.WithLabelValues("error").Inc()
		case entry.Version != version:
			monitoring.CatalogCache.WithLabelValues("stale").Inc()
		default:
			monitoring.CatalogCache.WithLabelValues("hit").Inc()
			return entry.Catalog, nil
		}
	}

	catalog, err := c.Source.LoadCatalog(ctx, courseID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(catalogEntry{Version: version, Catalog: catalog})
	if err == nil {
		if err := c.Store.Set(ctx, key, string(data), c.TTL); err != nil {
			logger.Log.Warn("catalog cache write failed", zap.Uint("courseId", courseID), zap.Error(err))
		}
	}
	return catalog, nil
}

// Invalidate 立即丢弃快照，不等版本变化
func (c *CachedCatalog) Invalidate(ctx context.Context, courseID uint) error {
	return c.Store.Del(ctx, catalogKey(courseID))
}
