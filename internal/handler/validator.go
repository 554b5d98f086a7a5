package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// ValidationError is one entry of a 422 response body.
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func pathError(param string) []ValidationError {
	return []ValidationError{{
		Loc:  []string{"path", param},
		Msg:  "value is not a valid integer",
		Type: "type_error.integer",
	}}
}

// bodyErrors converts bind and validation failures into ValidationError entries.
func bodyErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError(fe))
		}
		return out
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		loc := []string{"body"}
		if ute.Field != "" {
			loc = append(loc, strings.Split(ute.Field, ".")...)
		}
		return []ValidationError{{
			Loc:  loc,
			Msg:  "value is not a valid " + ute.Type.Kind().String(),
			Type: "type_error." + ute.Type.Kind().String(),
		}}
	}

	return []ValidationError{{
		Loc:  []string{"body"},
		Msg:  "invalid json body",
		Type: "value_error.jsondecode",
	}}
}

func fieldError(fe validator.FieldError) ValidationError {
	loc := []string{"body", fe.Field()}
	if fe.Tag() == "required" {
		return ValidationError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
	}
	return ValidationError{Loc: loc, Msg: fe.Error(), Type: "value_error." + fe.Tag()}
}
