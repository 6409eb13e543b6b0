// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("post_status", validatePostStatus)
	}
}

func validatePostStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "published":
		return true
	}
	return false
}
