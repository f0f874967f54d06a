package service

import "strings"

// 排序算法的纯计算部分。
// score = max_comment_id - sages * penalty:
// 非 sage 评论把 max_comment_id 推高（全局 ID 单调递增，等价于"最近活跃"），
// 每条 sage 评论固定扣减 penalty，压低只积累灌水回复的主题帖。
// 读路径按 score 升序排序即可，所有重算都发生在写路径。

// IsSage 判断评论是否为不顶帖回复（email 字段等于 "sage"，忽略大小写）。
func IsSage(email string) bool {
	return strings.EqualFold(email, "sage")
}

// ComputeScore 按公式计算主题帖的排序分。
func ComputeScore(maxCommentID uint64, sages, penalty int64) int64 {
	return int64(maxCommentID) - sages*penalty
}
