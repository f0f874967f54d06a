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
	"github.com/Xushengqwer/board_service/render"
	"github.com/Xushengqwer/board_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/board_service/repo/redis"
	"github.com/Xushengqwer/board_service/service"
)

func main() {
	// --- 0. 解析命令行参数 ---
	var numThreads int
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numThreads, "n", 20, "每个板块要生成的主题帖数量 (默认: 20)")
	flag.Parse()

	fmt.Printf("准备使用配置文件 '%s' 为每个板块生成 %d 个主题帖...\n", configFile, numThreads)

	if numThreads <= 0 {
		fmt.Println("错误: 生成的主题帖数量必须大于 0")
		os.Exit(1)
	}

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

	// --- 3. 初始化依赖 (不需要 Kafka，填充数据不产生下游事件) ---
	db, err := dependencies.InitMySQL(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(err))
	}
	rdb, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}

	// --- 4. 组装服务层 ---
	postRepo := mysql.NewPostRepository(db, logger)
	allocator := mysql.NewIDAllocator(db, logger)
	boardCache := redisRepo.NewBoardCache(rdb, logger)
	renderer := render.NewRenderer(cfg.RenderConfig, logger)
	boardService := service.NewBoardService(cfg.BoardsConfig, cfg.RankConfig, postRepo, allocator, boardCache, renderer, nil, logger)

	// --- 5. 执行填充 ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	Seed(ctx, boardService, logger, cfg.BoardsConfig.Names, numThreads)
}
