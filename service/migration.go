package service

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/config"
	"github.com/Xushengqwer/board_service/models/entities"
	"github.com/Xushengqwer/board_service/repo/mysql"
)

// backfillBatchSize 是迁移任务每批拉取的主题帖数量。
const backfillBatchSize = 200

// MigrationService 定义排序字段的一次性全量回填任务。
// - 使用场景: 排序公式变更（例如调整 sage 罚分）或历史数据缺失派生字段时，
//   对每个板块的每个主题帖重算 sages / max_comment_id / score 并落库。
// - 幂等: 重复执行产生完全相同的结果，可安全重跑到完成。
// - 必须在存储处于已知一致状态时运行（例如进程启动、开始服务流量之前），
//   不能与 ID 计数器的初始化竞争交错。
type MigrationService interface {
	// BackfillRankings 对全部配置板块执行回填，运行到完成，无部分恢复状态。
	BackfillRankings(ctx context.Context) error
}

// migrationService 是 MigrationService 接口的具体实现。
type migrationService struct {
	boards       []string
	rankCfg      config.RankConfig
	backfillRepo mysql.RankBackfillRepository
	logger       *core.ZapLogger
}

// NewMigrationService 是 migrationService 的构造函数。
func NewMigrationService(
	boardsCfg config.BoardsConfig,
	rankCfg config.RankConfig,
	backfillRepo mysql.RankBackfillRepository,
	logger *core.ZapLogger,
) MigrationService {
	return &migrationService{
		boards:       boardsCfg.Names,
		rankCfg:      rankCfg,
		backfillRepo: backfillRepo,
		logger:       logger,
	}
}

// BackfillRankings 实现全量回填。
func (s *migrationService) BackfillRankings(ctx context.Context) error {
	for _, board := range s.boards {
		s.logger.Info("开始回填板块排序字段", zap.String("board", board))

		var processed int
		err := s.backfillRepo.ForEachThread(ctx, board, backfillBatchSize, func(thread *entities.Post) error {
			if err := s.backfillThread(ctx, thread); err != nil {
				return err
			}
			processed++
			return nil
		})
		if err != nil {
			s.logger.Error("板块回填中断",
				zap.String("board", board),
				zap.Int("processed", processed),
				zap.Error(err),
			)
			return fmt.Errorf("回填板块 %q 失败: %w", board, err)
		}

		s.logger.Info("板块排序字段回填完成",
			zap.String("board", board),
			zap.Int("threads", processed),
		)
	}
	return nil
}

// backfillThread 对单个主题帖重算并落库派生字段。
// max_comment_id 的缺省语义: 没有任何非 sage 评论时等于主题帖自身 ID。
func (s *migrationService) backfillThread(ctx context.Context, thread *entities.Post) error {
	sages, err := s.backfillRepo.CountSageComments(ctx, thread.ID)
	if err != nil {
		return err
	}

	maxCommentID, err := s.backfillRepo.MaxNonSageCommentID(ctx, thread.ID)
	if err != nil {
		return err
	}
	if maxCommentID < thread.ID {
		maxCommentID = thread.ID
	}

	score := ComputeScore(maxCommentID, sages, s.rankCfg.SagePenalty)

	// 已经一致则跳过写入，重跑不产生多余的更新
	if thread.Sages == sages && thread.MaxCommentID == maxCommentID && thread.Score == score {
		return nil
	}
	return s.backfillRepo.UpdateRankFields(ctx, thread.ID, sages, maxCommentID, score)
}
