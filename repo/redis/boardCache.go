package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/constant"
	"github.com/Xushengqwer/board_service/models/vo"
	"github.com/Xushengqwer/board_service/myErrors"
)

// BoardCache 定义了板块目录的缓存操作接口。
// - 目标: 目录页是全量主题帖扫描，读频率远高于写频率，用 Redis 挡掉大部分回源。
// - 缓存的是净化渲染之后的 VO（渲染是纯函数，缓存它不改变读路径语义）。
// - 写操作（发帖/删帖）主动失效对应板块；TTL 仅作兜底。
type BoardCache interface {
	// GetCatalog 读取板块目录缓存。
	// - 缓存未命中返回 myErrors.ErrCacheMiss，上层服务需要处理回源。
	GetCatalog(ctx context.Context, board string) (*vo.CatalogVO, error)

	// SetCatalog 写入板块目录缓存（带 TTL）。
	SetCatalog(ctx context.Context, board string, catalog *vo.CatalogVO) error

	// InvalidateBoard 失效指定板块的目录缓存。
	// - 在该板块的任何帖子创建/删除成功后调用。
	InvalidateBoard(ctx context.Context, board string) error
}

// boardCache 是 BoardCache 接口的 Redis 实现。
type boardCache struct {
	redisClient *redis.Client   // Redis 客户端实例
	logger      *core.ZapLogger // 日志记录器实例
}

// NewBoardCache 是 boardCache 的构造函数。
func NewBoardCache(redisClient *redis.Client, logger *core.ZapLogger) BoardCache {
	return &boardCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

// catalogKey 生成板块目录缓存的 Redis Key。
func catalogKey(board string) string {
	return constant.BoardCatalogCachePrefix + board
}

// GetCatalog 实现目录缓存读取。
func (c *boardCache) GetCatalog(ctx context.Context, board string) (*vo.CatalogVO, error) {
	key := catalogKey(board)

	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("板块目录缓存未命中", zap.String("key", key))
			return nil, myErrors.ErrCacheMiss
		}
		c.logger.Error("读取板块目录缓存失败", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("读取目录缓存 '%s' 失败: %w", key, err)
	}

	var catalog vo.CatalogVO
	if err := json.Unmarshal(data, &catalog); err != nil {
		// 反序列化失败视为缓存损坏：按未命中处理并顺手清掉脏数据
		c.logger.Warn("板块目录缓存内容损坏，按未命中处理",
			zap.String("key", key),
			zap.Error(err),
		)
		if delErr := c.redisClient.Del(ctx, key).Err(); delErr != nil {
			c.logger.Error("清理损坏的目录缓存失败", zap.String("key", key), zap.Error(delErr))
		}
		return nil, myErrors.ErrCacheMiss
	}
	return &catalog, nil
}

// SetCatalog 实现目录缓存写入。
func (c *boardCache) SetCatalog(ctx context.Context, board string, catalog *vo.CatalogVO) error {
	key := catalogKey(board)

	data, err := json.Marshal(catalog)
	if err != nil {
		c.logger.Error("序列化板块目录失败", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("序列化目录 '%s' 失败: %w", board, err)
	}

	if err := c.redisClient.Set(ctx, key, data, constant.BoardCatalogCacheTTL).Err(); err != nil {
		c.logger.Error("写入板块目录缓存失败", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("写入目录缓存 '%s' 失败: %w", key, err)
	}
	return nil
}

// InvalidateBoard 实现目录缓存失效。
func (c *boardCache) InvalidateBoard(ctx context.Context, board string) error {
	key := catalogKey(board)
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		c.logger.Error("失效板块目录缓存失败", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("失效目录缓存 '%s' 失败: %w", key, err)
	}
	c.logger.Debug("板块目录缓存已失效", zap.String("key", key))
	return nil
}
