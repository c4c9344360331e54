package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rcastro/tutormatch/internal/pkg/validation"
)

// RegisterCustomValidators adds the domain validators to gin's binding
// engine. Call once before routes are registered.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return validation.IsTimeOfDay(fl.Field().String())
	})
}
