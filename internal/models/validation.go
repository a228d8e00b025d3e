package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes the first rule a request violated
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

var validate = newValidator()

// newValidator reports fields by their JSON name so messages match the wire format
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// A loose value satisfies required only when it is truthy
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(Value); ok && val.Truthy() {
			return val.String()
		}
		return ""
	}, Value{})
	return v
}

// Validate checks that the redesign request carries an image
func (r *RedesignRequest) Validate() error {
	return validateStruct(r)
}

// Validate checks that a job id was supplied
func (r *StatusRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: fieldErrs[0].Field(), Tag: fieldErrs[0].Tag()}
	}
	return err
}
