package model

import (
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("industry", func(fl validator.FieldLevel) bool {
		return slices.Contains(Industries, fl.Field().String())
	})
	return v
}

// IsEmail reports whether s is a syntactically valid e-mail address
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// InvalidFields lists the struct fields named in a validation error
func InvalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
