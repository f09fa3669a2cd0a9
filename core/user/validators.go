package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/rubiescode/shule/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

// Custom Validators

// roleValidation checks that the provided role is one of AllRoles.
func roleValidation(fl validator.FieldLevel) bool {
	role := Role(fl.Field().String())
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}
