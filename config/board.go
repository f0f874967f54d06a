package config

// BoardsConfig 定义本服务认可的板块集合。
// - 板块名是短字符串键（例如 "b", "g"），不在集合内的板块名一律拒绝。
// - 每个板块共享全局 ID 空间，但排序（score）互相独立。
type BoardsConfig struct {
	// Names 是全部合法板块名的列表，进程生命周期内不可变。
	Names []string `mapstructure:"names" json:"names" yaml:"names"`
}

// RankConfig 定义主题帖 bump/sage 排序算法的参数。
// score = max_comment_id - sages * sagePenalty，每次相关写操作后立即重算并落库，
// 读路径只需要按 score 排序，不需要在查询时做任何计算。
type RankConfig struct {
	// SagePenalty 是每条 sage 回复对主题帖 score 的固定扣减值。
	SagePenalty int64 `mapstructure:"sagePenalty" json:"sagePenalty" yaml:"sagePenalty"`

	// ThreadsPerPage 是板块列表页（尾部分页窗口）每页的主题帖数量。
	ThreadsPerPage int `mapstructure:"threadsPerPage" json:"threadsPerPage" yaml:"threadsPerPage"`

	// CommentsPreview 是板块列表页每个主题帖附带展示的最近评论条数。
	CommentsPreview int `mapstructure:"commentsPreview" json:"commentsPreview" yaml:"commentsPreview"`
}

// RenderConfig 定义内容净化管线的外部参数。
type RenderConfig struct {
	// AllowedImageHosts 是允许内嵌展示的图片主机白名单。
	// - 支持精确匹配（"imgur.com"）与通配符匹配（"*.imgur.com"，
	//   同时覆盖裸域名与任意子域名）。
	// - 不在白名单内的图片链接不会被静默丢弃，而是降级为 image_link 纯链接。
	AllowedImageHosts []string `mapstructure:"allowedImageHosts" json:"allowedImageHosts" yaml:"allowedImageHosts"`
}

// Defaults 为未配置的排序参数回填默认值。
// 150 / 15 / 3 与线上既有数据的打分口径保持一致，改动前必须跑一次全量迁移任务。
func (c *RankConfig) Defaults() {
	if c.SagePenalty == 0 {
		c.SagePenalty = 150
	}
	if c.ThreadsPerPage == 0 {
		c.ThreadsPerPage = 15
	}
	if c.CommentsPreview == 0 {
		c.CommentsPreview = 3
	}
}
