package mysql

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/board_service/constant"
	"github.com/Xushengqwer/board_service/myErrors"
)

// IDAllocator 定义全局帖子 ID 分配器接口。
// - 发出的值跨全部板块严格单调递增且永不复用。
// - 并发调用（包括跨进程实例）下依然成立：分配依赖存储侧的单语句原子自增，
//   调用方不做任何读取-再写回。
type IDAllocator interface {
	// NextID 原子地自增并取回下一个全局 ID。
	// - 计数器记录不存在时，由同一条语句原子地以种子值初始化并返回该种子，
	//   并发初始化只有一个调用者能拿到种子值。
	// - 存储不可达时返回 myErrors.ErrStoreUnavailable（包装后），
	//   调用方在拿到 ID 之前绝不能持久化帖子。
	NextID(ctx context.Context) (uint64, error)
}

// idAllocator 是 IDAllocator 基于 MySQL counters 表的实现。
type idAllocator struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewIDAllocator 是 idAllocator 的构造函数。
func NewIDAllocator(db *gorm.DB, logger *core.ZapLogger) IDAllocator {
	return &idAllocator{
		db:     db,
		logger: logger,
	}
}

// NextID 实现单语句原子 increment-and-fetch。
// 实现要点:
// - INSERT ... ON DUPLICATE KEY UPDATE 把"首次初始化"与"自增"合并为一条原子语句，
//   LAST_INSERT_ID(expr) 把本次发出的值绑定到当前连接。
// - LAST_INSERT_ID 是连接级状态，写入与读回必须走同一条连接，
//   因此用 gorm 的 Connection 包住两步。
func (a *idAllocator) NextID(ctx context.Context) (uint64, error) {
	var id uint64
	err := a.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"INSERT INTO `counters` (`name`, `value`) VALUES (?, LAST_INSERT_ID(?)) "+
				"ON DUPLICATE KEY UPDATE `value` = LAST_INSERT_ID(`value` + 1)",
			constant.IDCounterName, constant.IDCounterSeed,
		).Error; err != nil {
			return err
		}
		return tx.Raw("SELECT LAST_INSERT_ID()").Scan(&id).Error
	})
	if err != nil {
		a.logger.Error("分配全局帖子 ID 失败，存储不可达",
			zap.String("counter", constant.IDCounterName),
			zap.Error(err),
		)
		// 对上层只暴露"暂时不可用"，不泄露内部原因
		return 0, fmt.Errorf("分配帖子 ID: %w", myErrors.ErrStoreUnavailable)
	}
	return id, nil
}
