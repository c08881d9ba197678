package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pulsefit/internal/domain/payment/valueobjects"
)

// RegisterValidators installs custom binding validations on gin's validator
// engine. Call once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		_, err := valueobjects.ParsePaymentMethod(raw)
		return err == nil
	})
}
