package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// registerCustomValidators wires domain value checks into gin's binding
// validator so request structs can declare them as tags.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		return domain.Provider(fl.Field().String()).IsValid()
	})
}
