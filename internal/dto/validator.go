package dto

import (
	"reportdesk/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the "cron" tag registered.
func NewValidator() *goValidator.Validate {
	v := goValidator.New(goValidator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cron", func(fl goValidator.FieldLevel) bool {
		_, err := utils.ScheduleParser.Parse(fl.Field().String())
		return err == nil
	})
	return v
}
