package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	std  = validator.New(validator.WithRequiredStructEnabled())
)

// UseJSONNames makes gin's binding validator report fields by their json names.
func UseJSONNames() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonName)
		}
		std.RegisterTagNameFunc(jsonName)
	})
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// Details maps a binding or validation error to field -> reason.
// Errors that are not validation errors (malformed JSON, wrong types) are reported under "body".
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = reason(fe)
		}
		return out
	}
	return map[string]string{"body": err.Error()}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "hexadecimal", "len":
		return "must be a 24 character hex identifier"
	default:
		return "failed on " + fe.Tag()
	}
}

// Email checks that s is a well-formed email address.
func Email(s string) error {
	return std.Var(s, "required,email")
}
