package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	sharedConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"

	"github.com/Xushengqwer/board_service/constant"
	"github.com/Xushengqwer/board_service/models/vo"
	"github.com/Xushengqwer/board_service/myErrors"
)

func setupTestCache(t *testing.T) (BoardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger, err := core.NewZapLogger(sharedConfig.ZapConfig{})
	if err != nil {
		t.Fatalf("创建测试日志记录器失败: %v", err)
	}
	return NewBoardCache(client, logger), mr
}

func sampleCatalog(board string) *vo.CatalogVO {
	score := int64(-49)
	sages := int64(1)
	maxCommentID := uint64(101)
	return &vo.CatalogVO{
		Board: board,
		Threads: []*vo.PostVO{
			{
				ID:           100,
				Email:        "op@example.com",
				Html:         "<p>hello</p>\n",
				Sages:        &sages,
				MaxCommentID: &maxCommentID,
				Score:        &score,
			},
		},
	}
}

func TestGetCatalogMiss(t *testing.T) {
	cache, _ := setupTestCache(t)

	if _, err := cache.GetCatalog(context.Background(), "b"); !errors.Is(err, myErrors.ErrCacheMiss) {
		t.Fatalf("空缓存应返回未命中，实际 %v", err)
	}
}

func TestSetAndGetCatalog(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	want := sampleCatalog("b")
	if err := cache.SetCatalog(ctx, "b", want); err != nil {
		t.Fatalf("SetCatalog 失败: %v", err)
	}

	got, err := cache.GetCatalog(ctx, "b")
	if err != nil {
		t.Fatalf("GetCatalog 失败: %v", err)
	}
	if got.Board != "b" || len(got.Threads) != 1 {
		t.Fatalf("目录内容错误: %+v", got)
	}
	thread := got.Threads[0]
	if thread.ID != 100 || thread.Html != "<p>hello</p>\n" {
		t.Errorf("主题帖字段丢失: %+v", thread)
	}
	if thread.Score == nil || *thread.Score != -49 {
		t.Errorf("score 字段未完整往返: %v", thread.Score)
	}
	if thread.Sages == nil || *thread.Sages != 1 {
		t.Errorf("sages 字段未完整往返: %v", thread.Sages)
	}
}

// 不同板块的缓存互不干扰。
func TestCatalogKeyIsolation(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	if err := cache.SetCatalog(ctx, "b", sampleCatalog("b")); err != nil {
		t.Fatalf("SetCatalog 失败: %v", err)
	}
	if _, err := cache.GetCatalog(ctx, "tech"); !errors.Is(err, myErrors.ErrCacheMiss) {
		t.Fatalf("其他板块应未命中，实际 %v", err)
	}
}

func TestInvalidateBoard(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	if err := cache.SetCatalog(ctx, "b", sampleCatalog("b")); err != nil {
		t.Fatalf("SetCatalog 失败: %v", err)
	}
	if err := cache.InvalidateBoard(ctx, "b"); err != nil {
		t.Fatalf("InvalidateBoard 失败: %v", err)
	}
	if _, err := cache.GetCatalog(ctx, "b"); !errors.Is(err, myErrors.ErrCacheMiss) {
		t.Fatalf("失效后应未命中，实际 %v", err)
	}

	// 失效不存在的键不算错误
	if err := cache.InvalidateBoard(ctx, "nosuch"); err != nil {
		t.Errorf("失效不存在的键不应报错: %v", err)
	}
}

// 损坏的缓存内容按未命中处理，并且脏数据被顺手清理。
func TestGetCatalogCorruptEntry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	key := constant.BoardCatalogCachePrefix + "b"
	if err := mr.Set(key, "not-json{{{"); err != nil {
		t.Fatalf("写入脏数据失败: %v", err)
	}

	if _, err := cache.GetCatalog(ctx, "b"); !errors.Is(err, myErrors.ErrCacheMiss) {
		t.Fatalf("损坏内容应按未命中处理，实际 %v", err)
	}
	if mr.Exists(key) {
		t.Error("损坏的缓存键应被清理")
	}
}

// 缓存条目带 TTL，过期后自动失效。
func TestCatalogTTL(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	if err := cache.SetCatalog(ctx, "b", sampleCatalog("b")); err != nil {
		t.Fatalf("SetCatalog 失败: %v", err)
	}

	key := constant.BoardCatalogCachePrefix + "b"
	if ttl := mr.TTL(key); ttl <= 0 || ttl > constant.BoardCatalogCacheTTL {
		t.Fatalf("TTL 设置错误: %v", ttl)
	}

	mr.FastForward(constant.BoardCatalogCacheTTL + time.Second)
	if _, err := cache.GetCatalog(ctx, "b"); !errors.Is(err, myErrors.ErrCacheMiss) {
		t.Fatalf("过期后应未命中，实际 %v", err)
	}
}
