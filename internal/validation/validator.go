// Package validation checks request structs with go-playground/validator and
// reports failures as domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/peoplehub/hrdocs/internal/domain"
	domainerrors "github.com/peoplehub/hrdocs/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the smart tag rules registered:
//
//	smarttag     a "<<Name>>" token with a non-empty name free of delimiters
//	tagsource    one of the registered source names
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("smarttag", func(fl validator.FieldLevel) bool {
		return ValidToken(fl.Field().String())
	})
	_ = v.RegisterValidation("tagsource", func(fl validator.FieldLevel) bool {
		return domain.Source(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// ValidToken reports whether s is a well-formed smart tag token.
func ValidToken(s string) bool {
	if !strings.HasPrefix(s, domain.TokenOpen) || !strings.HasSuffix(s, domain.TokenClose) {
		return false
	}
	name := domain.DisplayName(s)
	if len(s) < len(domain.TokenOpen)+len(domain.TokenClose) || strings.TrimSpace(name) == "" {
		return false
	}
	return !strings.ContainsAny(name, "<>") && name == strings.TrimSpace(name)
}

// Validate validates a struct and returns a domain error listing each field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "url":
		return "must be a valid URL"
	case "smarttag":
		return "must look like <<Name>> with no angle brackets inside the name"
	case "tagsource":
		return "must be one of: " + sourceList()
	default:
		return "is invalid"
	}
}

func sourceList() string {
	names := make([]string, len(domain.Sources))
	for i, s := range domain.Sources {
		names[i] = string(s)
	}
	return strings.Join(names, " ")
}
