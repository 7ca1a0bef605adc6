package utils

import (
	"github.com/google/uuid"
)

// NewID 生成带前缀的唯一ID
// 原方案使用时间戳拼接，批量创建时可能碰撞，这里改用uuid
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
