package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewPayloadValidator checks EntryPayload against its validate tags and
// reports fields by their JSON key.
func NewPayloadValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
