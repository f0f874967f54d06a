// File: tasks/catalog_cache.go
package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/constant"
	"github.com/Xushengqwer/board_service/service"
)

// CatalogCacheTask 负责定时预热 Redis 中的板块目录缓存。
// 写操作已经会主动失效缓存，这个任务的作用是把失效后的首次慢查询
// 从用户请求挪到后台，并在失效消息丢失时纠正滞留的脏数据。
type CatalogCacheTask struct {
	boardService service.BoardService
	cron         *cron.Cron
	logger       *core.ZapLogger
}

// NewCatalogCacheTask 初始化并启动目录缓存预热的定时任务。
// - boardService: 提供 WarmCatalog 与板块集合。
// - logger: ZapLogger 实例。
func NewCatalogCacheTask(boardService service.BoardService, logger *core.ZapLogger) *CatalogCacheTask {
	cronV3 := cron.New() // 默认分钟级精度

	task := &CatalogCacheTask{
		boardService: boardService,
		cron:         cronV3,
		logger:       logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *CatalogCacheTask) startCronJob() {
	schedule := constant.CatalogCacheCronSpec
	t.logger.Info("准备启动板块目录缓存预热定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("板块目录缓存预热任务开始执行...")
		startTime := time.Now()
		// 为单次任务执行设置超时，防止任务卡死。
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.warmAllBoards(ctx)

		duration := time.Since(startTime)
		t.logger.Info("板块目录缓存预热任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加板块目录缓存预热 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("板块目录缓存预热定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// warmAllBoards 依次预热每个配置板块的目录缓存。
// 单个板块失败只记日志并继续，避免一个板块的问题拖垮整轮预热。
func (t *CatalogCacheTask) warmAllBoards(ctx context.Context) {
	for _, board := range t.boardService.Boards() {
		if err := t.boardService.WarmCatalog(ctx, board); err != nil {
			t.logger.Error("预热板块目录缓存失败", zap.String("board", board), zap.Error(err))
			continue
		}
		t.logger.Debug("板块目录缓存已预热", zap.String("board", board))
	}
}

// Stop 优雅地停止 cron 调度器。
func (t *CatalogCacheTask) Stop() context.Context {
	t.logger.Info("正在停止板块目录缓存预热定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("板块目录缓存预热定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
