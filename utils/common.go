package utils

import (
	"regexp"
)

var (
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidPhone 验证手机号是否有效
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidEmail 验证邮箱是否有效
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
