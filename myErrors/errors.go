package myErrors

import (
	"errors"
	"fmt"
)

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// ErrStoreUnavailable 表示底层存储（MySQL 计数器或集合操作）不可达。
// - 对外只暴露"暂时不可用，请稍后重试"的语义，不泄露内部原因。
// - 调用方在未成功获得 ID 之前，绝不能持久化帖子。
var ErrStoreUnavailable = errors.New("store: temporarily unavailable")

// ValidationError 表示提交的帖子载荷未通过入口校验。
// - Field 指出未通过校验的字段（或未知字段的名字），便于调用方定位。
// - 校验失败发生在任何存储副作用（包括 ID 分配）之前。
type ValidationError struct {
	Field  string // 出错的字段名
	Reason string // 具体原因描述
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: field %q %s", e.Field, e.Reason)
}

// NewValidationError 构造一个字段级校验错误。
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
