package entities

import "time"

// Post 帖子实体，主题帖与评论共用同一张表。
// - 表名: posts
// - id 由全局 ID 分配器（counters 表）发放，不使用数据库自增，
//   保证跨板块全局唯一且严格递增，删除后永不复用。
// - ParentID 为 NULL 表示主题帖；非 NULL 表示评论，且只能指向同板块的主题帖
//   （只允许一层嵌套，评论不能再挂评论）。
// - Sages / MaxCommentID / Score 是主题帖专属的派生排序字段，评论行保持零值，
//   在响应 VO 中对评论隐藏。帖子创建后除删除外不可变，仅这三个派生字段
//   会因后续评论而被原子更新。
// - 有意不嵌入软删除字段：删除是硬删除，没有墓碑。
type Post struct {
	// 全局唯一帖子 ID，创建时一次性分配，不可变
	ID uint64 `gorm:"primaryKey;autoIncrement:false"`

	// 所属板块名，来自配置的固定集合
	// - 与 parent_id / score 建组合索引，覆盖列表页和目录页的排序查询
	Board string `gorm:"type:varchar(16);not null;index:idx_board_thread_score,priority:1"`

	// 父主题帖 ID，NULL 表示本行是主题帖
	ParentID *uint64 `gorm:"index:idx_board_thread_score,priority:2"`

	// 邮箱字段，语义上被复用：值为 "sage"（忽略大小写）的评论不顶帖
	Email string `gorm:"type:varchar(100);not null"`

	// 图片外链 URL，可为空字符串
	Image string `gorm:"type:varchar(500);not null"`

	// 用户提交的原始标记文本，读路径渲染为 HTML，原文永不下发
	Text string `gorm:"type:text;not null"`

	// 已收到的 sage 评论数（仅主题帖有意义）
	Sages int64 `gorm:"not null;default:0"`

	// 非 sage 评论中的最大帖子 ID；尚无评论时等于主题帖自身 ID（仅主题帖有意义）
	MaxCommentID uint64 `gorm:"not null;default:0"`

	// 派生排序分: max_comment_id - sages * penalty，每次相关写操作后立即重算
	Score int64 `gorm:"not null;default:0;index:idx_board_thread_score,priority:3"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsThread 返回该行是否为主题帖。
func (p *Post) IsThread() bool {
	return p.ParentID == nil
}
