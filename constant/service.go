package constant

// 服务标识常量，用于日志、追踪和事件来源标记
const (
	ServiceName    = "board_service"
	ServiceVersion = "1.0.0"
)

// IDCounterName 是全局帖子 ID 计数器在 counters 表中的行键。
// 所有板块共享同一个计数器，保证 ID 全局唯一且单调递增。
const IDCounterName = "post_id"

// IDCounterSeed 是计数器首次初始化时发出的第一个 ID。
// 初始化必须是原子的：并发的首次分配只允许一个调用者拿到该种子值。
const IDCounterSeed uint64 = 100
