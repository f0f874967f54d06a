package vo

import "time"

// PostVO 定义了帖子的响应数据结构。
// - 这是唯一离开服务的帖子形态：原始 text 已被渲染净化为 Html，原文不下发。
// - 主题帖与评论通过指针字段区分：评论携带 Parent，主题帖携带
//   Sages / MaxCommentID / Score；对方的字段序列化时省略。
// - Image 为 null 表示图片主机不在内嵌白名单内，此时规范化后的原始链接
//   会出现在 ImageLink 中（降级为纯链接展示，引用不会被静默丢弃）。
type PostVO struct {
	ID           uint64    `json:"id"`                       // 帖子ID
	Parent       *uint64   `json:"parent,omitempty"`         // 父主题帖ID，仅评论携带
	Email        string    `json:"email"`                    // 邮箱字段
	Image        *string   `json:"image"`                    // 可内嵌的图片 URL，不可内嵌时为 null
	ImageLink    *string   `json:"image_link,omitempty"`     // 不可内嵌时的降级纯链接
	Html         string    `json:"html"`                     // 净化后的 HTML 渲染结果
	Sages        *int64    `json:"sages,omitempty"`          // sage 评论计数，仅主题帖携带
	MaxCommentID *uint64   `json:"max_comment_id,omitempty"` // 最大非 sage 评论ID，仅主题帖携带
	Score        *int64    `json:"score,omitempty"`          // 派生排序分，仅主题帖携带
	CreatedAt    time.Time `json:"created_at"`               // 创建时间
}

// BoardPageVO 定义板块列表页的响应结构。
// - Posts 是扁平序列: [主题帖, ≤N条最近评论, 主题帖, ≤N条最近评论, ...]，
//   主题帖按最近被顶（score 降序）排列，评论按发布顺序排列。
type BoardPageVO struct {
	Board string    `json:"board"` // 板块名
	Posts []*PostVO `json:"posts"` // 帖子分组的扁平拼接
}

// CatalogVO 定义板块目录页的响应结构。
// - Threads 是板块内全部主题帖，按 score 升序排列，不附带评论。
type CatalogVO struct {
	Board   string    `json:"board"`   // 板块名
	Threads []*PostVO `json:"threads"` // 全部主题帖
}

// ThreadVO 定义主题帖详情页的响应结构。
// - Posts[0] 是主题帖本身，其后是全部评论，按插入（ID）顺序排列。
type ThreadVO struct {
	Board string    `json:"board"` // 板块名
	Posts []*PostVO `json:"posts"` // [主题帖, 全部评论...]
}
