package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// IsUsername 是一个自定义的校验函数，用于验证用户名格式
func IsUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	re := regexp.MustCompile(`^[A-Za-z0-9._-]{1,50}$`)
	return re.MatchString(username)
}
