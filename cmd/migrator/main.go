package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/board_service/config"
	"github.com/Xushengqwer/board_service/dependencies"
	"github.com/Xushengqwer/board_service/repo/mysql"
	"github.com/Xushengqwer/board_service/service"
)

// 一次性迁移工具：对全部板块重算并回填主题帖的 sages / max_comment_id / score。
// 排序公式变更后部署前运行一次；幂等，可安全重跑到完成。
// 必须在没有并发写流量时运行（例如服务实例停止期间）。
func main() {
	// --- 0. 解析命令行参数 ---
	var configFile string
	var timeoutMinutes int
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&timeoutMinutes, "timeout", 30, "整个回填任务的超时时间 (分钟)")
	flag.Parse()

	fmt.Printf("准备使用配置文件 '%s' 执行排序字段全量回填...\n", configFile)

	// --- 1. 加载配置 ---
	var cfg appConfig.BoardConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", configFile, err)
		os.Exit(1)
	}
	cfg.RankConfig.Defaults()
	fmt.Println("配置加载成功。")

	// --- 2. 初始化 Logger ---
	logger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()

	// --- 3. 初始化 MySQL ---
	db, err := dependencies.InitMySQL(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(err))
	}

	// --- 4. 执行回填 ---
	backfillRepo := mysql.NewRankBackfillRepository(db, logger)
	migrationService := service.NewMigrationService(cfg.BoardsConfig, cfg.RankConfig, backfillRepo, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutMinutes)*time.Minute)
	defer cancel()

	start := time.Now()
	if err := migrationService.BackfillRankings(ctx); err != nil {
		logger.Fatal("排序字段全量回填失败", zap.Error(err))
	}
	logger.Info("排序字段全量回填完成", zap.Duration("duration", time.Since(start)))
	fmt.Printf("回填完成，耗时 %s。\n", time.Since(start))
}
