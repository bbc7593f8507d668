package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var fullNameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	// letters and spaces only, no digits
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullNameRe.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
