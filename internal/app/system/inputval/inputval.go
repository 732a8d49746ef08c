// internal/app/system/inputval/inputval.go

// Package inputval validates request input structs using struct tags.
//
// Fields declare rules with the standard `validate` tag and a
// human-facing name with the `label` tag; messages are built from the
// label so they can be returned to the client as-is.
//
//	type createInput struct {
//		Name string `validate:"required,max=100" label:"Activity name"`
//	}
package inputval

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Result holds the validation outcome for one input struct.
type Result struct {
	errs []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool {
	return len(r.errs) > 0
}

// First returns the first failure message, or "" when validation passed.
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0]
}

// All returns every failure message in field order.
func (r Result) All() []string {
	return r.errs
}

// Validate checks the struct's `validate` tags and returns the collected
// failure messages.
func Validate(input any) Result {
	err := validate.Struct(input)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{errs: []string{"Invalid input."}}
	}

	var r Result
	for _, fe := range verrs {
		r.errs = append(r.errs, message(fe))
	}
	return r
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must have at most %s entries.", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s entries.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
