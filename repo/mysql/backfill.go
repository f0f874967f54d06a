package mysql

import (
	"context"
	"database/sql"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/board_service/models/entities"
)

// RankBackfillRepository 定义迁移任务回填排序字段所需的批量操作接口。
// 与 PostRepository 分开，是因为这些查询只服务于一次性的全量迁移，
// 正常读写路径永远不需要按评论聚合重算。
type RankBackfillRepository interface {
	// ForEachThread 按批次遍历板块内的全部主题帖，依次调用 fn。
	// - fn 返回错误时中止遍历并透传该错误。
	ForEachThread(ctx context.Context, board string, batchSize int, fn func(thread *entities.Post) error) error

	// CountSageComments 统计主题帖下 sage 评论（email 忽略大小写等于 "sage"）的数量。
	CountSageComments(ctx context.Context, threadID uint64) (int64, error)

	// MaxNonSageCommentID 返回主题帖下非 sage 评论的最大 ID；没有则返回 0。
	MaxNonSageCommentID(ctx context.Context, threadID uint64) (uint64, error)

	// UpdateRankFields 一次性落库回填后的 sages / max_comment_id / score。
	UpdateRankFields(ctx context.Context, threadID uint64, sages int64, maxCommentID uint64, score int64) error
}

// rankBackfillRepository 是 RankBackfillRepository 的 MySQL 实现。
type rankBackfillRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewRankBackfillRepository 是 rankBackfillRepository 的构造函数。
func NewRankBackfillRepository(db *gorm.DB, logger *core.ZapLogger) RankBackfillRepository {
	return &rankBackfillRepository{
		db:     db,
		logger: logger,
	}
}

// ForEachThread 使用 FindInBatches 分批拉取主题帖，避免一次性加载整个板块。
func (r *rankBackfillRepository) ForEachThread(ctx context.Context, board string, batchSize int, fn func(thread *entities.Post) error) error {
	var batch []*entities.Post
	var fnErr error
	result := r.db.WithContext(ctx).
		Where("board = ? AND parent_id IS NULL", board).
		Order("id ASC").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, batchNo int) error {
			for _, thread := range batch {
				if err := fn(thread); err != nil {
					fnErr = err
					return err
				}
			}
			return nil
		})
	if fnErr != nil {
		return fnErr
	}
	if result.Error != nil {
		r.logger.Error("批量遍历主题帖失败", zap.String("board", board), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// CountSageComments 实现 sage 评论计数。
func (r *rankBackfillRepository) CountSageComments(ctx context.Context, threadID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("parent_id = ? AND LOWER(email) = ?", threadID, "sage").
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计 sage 评论失败", zap.Uint64("threadID", threadID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// MaxNonSageCommentID 实现非 sage 评论最大 ID 聚合查询。
func (r *rankBackfillRepository) MaxNonSageCommentID(ctx context.Context, threadID uint64) (uint64, error) {
	// MAX 在空集上返回 NULL，用 NullInt64 接住
	var max sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Select("MAX(id)").
		Where("parent_id = ? AND LOWER(email) <> ?", threadID, "sage").
		Scan(&max).Error
	if err != nil {
		r.logger.Error("查询非 sage 评论最大 ID 失败", zap.Uint64("threadID", threadID), zap.Error(err))
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return uint64(max.Int64), nil
}

// UpdateRankFields 实现回填结果落库。
func (r *rankBackfillRepository) UpdateRankFields(ctx context.Context, threadID uint64, sages int64, maxCommentID uint64, score int64) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND parent_id IS NULL", threadID).
		Updates(map[string]interface{}{
			"sages":          sages,
			"max_comment_id": maxCommentID,
			"score":          score,
		}).Error
	if err != nil {
		r.logger.Error("回填排序字段失败", zap.Uint64("threadID", threadID), zap.Error(err))
		return err
	}
	return nil
}
