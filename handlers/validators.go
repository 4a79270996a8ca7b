package handlers

import (
	"fmt"

	"carrental/models"
	"carrental/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 在 gin 的 validator 上註冊列舉與日期格式檢查
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	rules := map[string]validator.Func{
		"isodate": func(fl validator.FieldLevel) bool {
			return utils.IsDate(fl.Field().String())
		},
		"carcategory": func(fl validator.FieldLevel) bool {
			return models.CarCategory(fl.Field().String()).IsValid()
		},
		"transmission": func(fl validator.FieldLevel) bool {
			return models.Transmission(fl.Field().String()).IsValid()
		},
		"fueltype": func(fl validator.FieldLevel) bool {
			return models.FuelType(fl.Field().String()).IsValid()
		},
		"customerstatus": func(fl validator.FieldLevel) bool {
			return models.CustomerStatus(fl.Field().String()).IsValid()
		},
		"locationstatus": func(fl validator.FieldLevel) bool {
			return models.LocationStatus(fl.Field().String()).IsValid()
		},
		"bookingstatus": func(fl validator.FieldLevel) bool {
			return models.BookingStatus(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validator %s: %w", tag, err)
		}
	}
	return nil
}
