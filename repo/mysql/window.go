package mysql

// 尾部窗口计算。
// 底层存储擅长正向扫描，而业务需要的是"升序序列的最近一段"：
// 用 COUNT + 计算出的 OFFSET 代替"倒序取前 N 条再翻转"，
// 结果天然保持升序（窗口内最旧的在前），正好是展示顺序。
// 一致性前提：窗口计算与消费之间集合未被并发修改；并发插入可能使
// 相邻页边界偏移一条，这是已接受的行为，不做补偿。

// tailLimitWindow 计算"最近 n 条"窗口。
// - 返回升序游标上应跳过的偏移量与应消费的条数。
// - 集合长度不足 n 时偏移量收敛到 0，返回全部可用元素，不报错。
func tailLimitWindow(total int64, n int) (offset int, limit int) {
	if n < 0 {
		n = 0
	}
	offset = int(total) - n
	if offset < 0 {
		offset = 0
	}
	limit = int(total) - offset
	if limit > n {
		limit = n
	}
	return offset, limit
}

// tailPageWindow 计算从尾部起算的第 page 页（0 起）窗口，每页 step 条。
// - 第 0 页是最近的 step 条；第 1 页是再往前的 step 条，依此类推。
// - 等价于先取 tailLimit(step*(page+1)) 再保留其中最前面的 step 条。
func tailPageWindow(total int64, page, step int) (offset int, limit int) {
	if page < 0 {
		page = 0
	}
	if step < 0 {
		step = 0
	}
	full := step * (page + 1)
	offset = int(total) - full
	if offset < 0 {
		offset = 0
	}
	limit = int(total) - offset
	if limit > step {
		limit = step
	}
	return offset, limit
}
