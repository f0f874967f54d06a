package constant

import "time"

// Redis Key 相关常量 (导出)
const (
	// BoardCatalogCachePrefix 是板块目录缓存的 Key 前缀。
	// 每个板块会有一个对应的 Key，存储该板块按 score 升序排列的全部主题帖
	// （已完成净化渲染的 VO 列表的 JSON 序列化结果）。
	// 示例 Key: "board_catalog:b" (其中 b 是板块名)
	// Redis 类型: String
	BoardCatalogCachePrefix = "board_catalog:"

	// BoardCatalogCacheTTL 是板块目录缓存的过期时间。
	// 写操作（发帖/删帖）会主动失效对应板块的缓存，TTL 只是兜底，
	// 防止失效消息丢失后缓存长期滞留脏数据。
	BoardCatalogCacheTTL = 10 * time.Minute

	// CatalogCacheCronSpec 是目录缓存预热定时任务的 cron 表达式（分钟级）。
	CatalogCacheCronSpec = "*/5 * * * *"
)
