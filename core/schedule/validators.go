package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/rubiescode/shule/core"
)

var (
	weekdayTag  = "weekday"
	weekdayText = "must be a school day (Monday to Friday)"
)

func init() {
	_ = core.Validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(weekdayTag, weekdayText)
}

// weekdayValidation checks that the provided day is one of Weekdays.
func weekdayValidation(fl validator.FieldLevel) bool {
	day := fl.Field().String()
	for _, d := range Weekdays {
		if day == d {
			return true
		}
	}
	return false
}
