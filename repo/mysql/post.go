package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/board_service/models/entities"
	"github.com/Xushengqwer/board_service/myErrors"
)

// PostRepository 定义了帖子数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type PostRepository interface {
	// CreatePost 持久化一个新的帖子记录（主题帖或评论）。
	// - 调用前帖子必须已经从 ID 分配器拿到全局 ID。
	CreatePost(ctx context.Context, post *entities.Post) error

	// GetThread 获取指定板块内的一个主题帖。
	// - 只匹配 parent_id IS NULL 的行；评论 ID 或其他板块的 ID 一律视为未找到，
	//   返回 commonerrors.ErrRepoNotFound（跨板块的主题帖 ID 永不解析）。
	GetThread(ctx context.Context, board string, id uint64) (*entities.Post, error)

	// ListThreadsTailPage 返回板块主题帖按 score 升序的尾部第 page 页（0 起）。
	// - 第 0 页是 score 最高（最近被顶）的 step 条，窗口内依然保持升序。
	// - 集合长度不足时窗口收敛，返回可用部分，不报错。
	ListThreadsTailPage(ctx context.Context, board string, page, step int) ([]*entities.Post, error)

	// ListAllThreadsByScore 返回板块内全部主题帖，按 score 升序（目录页）。
	ListAllThreadsByScore(ctx context.Context, board string) ([]*entities.Post, error)

	// ListRecentComments 返回主题帖按 ID 升序的最近 n 条评论（尾部窗口）。
	ListRecentComments(ctx context.Context, threadID uint64, n int) ([]*entities.Post, error)

	// ListComments 返回主题帖的全部评论，按插入（ID）顺序。
	ListComments(ctx context.Context, threadID uint64) ([]*entities.Post, error)

	// BumpThread 处理非 sage 评论对父主题帖的排序更新。
	// - 单条原子 UPDATE: max_comment_id 置为新评论 ID，
	//   score 按 max_comment_id - sages*penalty 同语句重算落库。
	BumpThread(ctx context.Context, threadID, commentID uint64, penalty int64) error

	// SageThread 处理 sage 评论对父主题帖的排序更新。
	// - 单条原子 UPDATE: sages 自增 1，score 同语句扣减 penalty，
	//   max_comment_id 保持不变。
	SageThread(ctx context.Context, threadID uint64, penalty int64) error

	// DeletePost 硬删除指定板块内的一个帖子。
	// - 精确删除该行，不级联评论，也不重算任何其他主题帖的 score。
	// - 目标不存在时返回 commonerrors.ErrRepoNotFound。
	DeletePost(ctx context.Context, board string, id uint64) error
}

// postRepository 是 PostRepository 接口针对 MySQL 的具体实现。
type postRepository struct {
	db     *gorm.DB        // GORM 数据库实例
	logger *core.ZapLogger // 日志记录器实例
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// storeErr 统一包装数据库层错误：细节只进日志，向上只暴露"暂时不可用"。
func (r *postRepository) storeErr(op string, err error, fields ...zap.Field) error {
	r.logger.Error("帖子存储操作失败", append(fields, zap.String("op", op), zap.Error(err))...)
	return fmt.Errorf("%s: %w", op, myErrors.ErrStoreUnavailable)
}

// CreatePost 实现帖子的数据库插入操作。
func (r *postRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return r.storeErr("创建帖子", err, zap.Uint64("postID", post.ID), zap.String("board", post.Board))
	}
	return nil
}

// GetThread 实现按板块 + ID 获取主题帖。
func (r *postRepository) GetThread(ctx context.Context, board string, id uint64) (*entities.Post, error) {
	var thread entities.Post
	err := r.db.WithContext(ctx).
		Where("board = ? AND id = ? AND parent_id IS NULL", board, id).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("主题帖未找到", zap.String("board", board), zap.Uint64("threadID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, r.storeErr("获取主题帖", err, zap.Uint64("threadID", id))
	}
	return &thread, nil
}

// ListThreadsTailPage 实现主题帖的尾部分页窗口查询。
// 升序排序 + 计算偏移量代替倒序查询，窗口内结果保持 score 升序。
func (r *postRepository) ListThreadsTailPage(ctx context.Context, board string, page, step int) ([]*entities.Post, error) {
	base := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("board = ? AND parent_id IS NULL", board)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, r.storeErr("统计主题帖", err, zap.String("board", board))
	}

	offset, limit := tailPageWindow(total, page, step)
	if limit == 0 {
		return []*entities.Post{}, nil
	}

	var threads []*entities.Post
	err := r.db.WithContext(ctx).
		Where("board = ? AND parent_id IS NULL", board).
		Order("score ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&threads).Error
	if err != nil {
		return nil, r.storeErr("查询主题帖列表", err, zap.String("board", board), zap.Int("page", page))
	}
	return threads, nil
}

// ListAllThreadsByScore 实现目录页查询：全部主题帖按 score 升序。
func (r *postRepository) ListAllThreadsByScore(ctx context.Context, board string) ([]*entities.Post, error) {
	var threads []*entities.Post
	err := r.db.WithContext(ctx).
		Where("board = ? AND parent_id IS NULL", board).
		Order("score ASC").Order("id ASC").
		Find(&threads).Error
	if err != nil {
		return nil, r.storeErr("查询板块目录", err, zap.String("board", board))
	}
	return threads, nil
}

// ListRecentComments 实现评论的尾部窗口查询（最近 n 条，ID 升序）。
func (r *postRepository) ListRecentComments(ctx context.Context, threadID uint64, n int) ([]*entities.Post, error) {
	base := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("parent_id = ?", threadID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, r.storeErr("统计评论", err, zap.Uint64("threadID", threadID))
	}

	offset, limit := tailLimitWindow(total, n)
	if limit == 0 {
		return []*entities.Post{}, nil
	}

	var comments []*entities.Post
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", threadID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, r.storeErr("查询最近评论", err, zap.Uint64("threadID", threadID))
	}
	return comments, nil
}

// ListComments 实现主题帖全部评论查询，按 ID 升序（即插入顺序）。
func (r *postRepository) ListComments(ctx context.Context, threadID uint64) ([]*entities.Post, error) {
	var comments []*entities.Post
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", threadID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, r.storeErr("查询全部评论", err, zap.Uint64("threadID", threadID))
	}
	return comments, nil
}

// BumpThread 实现非 sage 评论的排序字段更新。
// score 在同一条 UPDATE 里基于当前行的 sages 重算，不在调用方做读取-再写回。
func (r *postRepository) BumpThread(ctx context.Context, threadID, commentID uint64, penalty int64) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND parent_id IS NULL", threadID).
		Updates(map[string]interface{}{
			"max_comment_id": commentID,
			"score":          gorm.Expr("? - sages * ?", commentID, penalty),
		})
	if result.Error != nil {
		return r.storeErr("顶帖更新", result.Error, zap.Uint64("threadID", threadID))
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("顶帖更新未命中主题帖", zap.Uint64("threadID", threadID))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// SageThread 实现 sage 评论的排序字段更新。
// sages 自增与 score 扣减在同一条 UPDATE 里完成，等价于按公式全量重算。
func (r *postRepository) SageThread(ctx context.Context, threadID uint64, penalty int64) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND parent_id IS NULL", threadID).
		Updates(map[string]interface{}{
			"sages": gorm.Expr("sages + 1"),
			"score": gorm.Expr("score - ?", penalty),
		})
	if result.Error != nil {
		return r.storeErr("sage 更新", result.Error, zap.Uint64("threadID", threadID))
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("sage 更新未命中主题帖", zap.Uint64("threadID", threadID))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeletePost 实现帖子的硬删除。
// 本实体没有软删除字段，Delete 直接生成 DELETE 语句；
// 主题帖被删除后其评论成为孤儿（父引用悬空），这里不做级联，也不补偿任何 score。
func (r *postRepository) DeletePost(ctx context.Context, board string, id uint64) error {
	result := r.db.WithContext(ctx).
		Where("board = ?", board).
		Delete(&entities.Post{}, id)
	if result.Error != nil {
		return r.storeErr("删除帖子", result.Error, zap.Uint64("postID", id))
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试删除帖子但未找到记录", zap.String("board", board), zap.Uint64("postID", id))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
