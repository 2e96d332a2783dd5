// Package validate runs struct-tag validation and turns failures into the
// field → message map the JSON envelope carries under "errors".
//
// Rules are go-playground/validator tags. Field keys come from the json tag so
// the map lines up with the request body:
//
//	type Input struct {
//	    Name  string  `json:"name"    validate:"required"`
//	    Price float64 `json:"priceAC" validate:"required,gt=0"`
//	}
//
// Struct(Input{}) → {"name": "The name field is required.", "priceAC": "..."}
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
	messages = map[string]string{}
	msgMu    sync.RWMutex
)

func engine() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates s and returns field-level messages. An empty map means s
// is valid. Non-struct values are never invalid.
func Struct(s any) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(s)
	if err == nil {
		return errs
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}

	for _, fe := range ve {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

// HasErrors reports whether errs carries any failure.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

// RegisterString adds a string rule named tag. msg, when non-empty, is the
// message format; %s is replaced with the field name.
func RegisterString(tag, msg string, fn func(string) bool) error {
	err := engine().RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		return fmt.Errorf("validate: register %q: %w", tag, err)
	}

	if msg != "" {
		msgMu.Lock()
		messages[tag] = msg
		msgMu.Unlock()
	}
	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	msgMu.RLock()
	custom, ok := messages[fe.Tag()]
	msgMu.RUnlock()
	if ok {
		return fmt.Sprintf(custom, field)
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
