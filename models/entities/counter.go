package entities

// Counter 全局计数器实体，为 ID 分配器提供共享的计数器记录。
// - 表名: counters
// - 分配操作是对单行的原子 increment-and-fetch，绝不在调用方做读取-再写回。
// - 首次分配时由同一条语句原子地初始化种子值，并发初始化不会发出重复 ID。
type Counter struct {
	// 计数器名，主键（当前只有 constant.IDCounterName 一行）
	Name string `gorm:"type:varchar(32);primaryKey"`

	// 最近一次发出的值
	Value uint64 `gorm:"not null"`
}
