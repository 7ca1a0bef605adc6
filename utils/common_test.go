package utils_test

import (
	"strings"
	"testing"

	"carcrm/utils"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	assert.True(t, utils.IsValidPhone("13812345678"))
	assert.True(t, utils.IsValidPhone("19900000000"))

	assert.False(t, utils.IsValidPhone(""))
	assert.False(t, utils.IsValidPhone("12812345678")) // 第二位不合法
	assert.False(t, utils.IsValidPhone("1381234567"))  // 位数不足
	assert.False(t, utils.IsValidPhone("138123456789"))
	assert.False(t, utils.IsValidPhone("abc12345678"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, utils.IsValidEmail("zhangwei@example.com"))
	assert.False(t, utils.IsValidEmail("zhangwei"))
	assert.False(t, utils.IsValidEmail("zhangwei@"))
	assert.False(t, utils.IsValidEmail("@example.com"))
}

func TestNewIDPrefixAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := utils.NewID("cust")
		assert.True(t, strings.HasPrefix(id, "cust_"))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := utils.NewValidationError(map[string]string{
		"phone": "手机号格式不正确",
		"name":  "姓名不能为空",
	})
	// 字段按名称排序，消息稳定
	assert.Equal(t, "输入校验失败 [name: 姓名不能为空; phone: 手机号格式不正确]", err.Error())
	assert.True(t, utils.IsValidationError(err))
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := utils.NewAppError("保存失败", "SAVE_FAILED", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "保存失败")
}
