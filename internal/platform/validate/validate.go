// Package validate checks request payloads with go-playground/validator and
// reports failures as errs.ErrValidation.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
)

var messages = map[string]string{
	"required": "is required",
	"notblank": "must not be blank",
	"oneof":    "must be one of [%s]",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"max":      "must be at most %s characters long",
	"fhirdate": "must be a FHIR date (YYYY, YYYY-MM, YYYY-MM-DD or a dateTime)",
}

var withParams = map[string]bool{"oneof": true, "gte": true, "lte": true, "max": true}

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterValidation("fhirdate", func(fl validator.FieldLevel) bool {
		return fhir.IsDate(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate checks struct tags and returns an errs.ErrValidation listing
// every failing field.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.Validation("invalid input: %v", err)
	}
	return errs.Validation("%s", Format(verrs))
}

// Format renders validation errors as "field message, field message".
func Format(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if withParams[fe.Tag()] {
			param := fe.Param()
			if fe.Tag() == "oneof" {
				param = strings.Join(strings.Fields(param), ", ")
			}
			msg = strings.Replace(msg, "%s", param, 1)
		}
		parts = append(parts, fe.Field()+" "+msg)
	}
	return strings.Join(parts, ", ")
}
