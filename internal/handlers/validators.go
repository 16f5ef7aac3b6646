package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// registerValidations installs custom binding validators used by the request
// shapes. Color fields accept an empty string or a #rgb/#rrggbb value.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hexcolor_or_empty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || hexColorPattern.MatchString(s)
	})
}
