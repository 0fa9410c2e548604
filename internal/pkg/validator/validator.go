// Package validator checks request DTOs against their validate struct tags
// and reports failures as a field-to-rule map suitable for error payloads.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate returns nil when v passes, otherwise a map of failing field
// names to the tag that rejected them.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrs[fe.Field()] = fe.Tag()
	}
	return fieldErrs
}
