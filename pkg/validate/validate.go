// Package validate wraps go-playground/validator with the storefront's
// custom rules and JSON field naming.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate

	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// Default returns the shared validator. It is safe for concurrent use.
func Default() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		// mmyy: card expiry as printed on the card, e.g. 04/27.
		_ = v.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
			return expiryRe.MatchString(fl.Field().String())
		})
		// cardnum: 12 to 19 digits once spaces and dashes are dropped.
		_ = v.RegisterValidation("cardnum", func(fl validator.FieldLevel) bool {
			n := NormalizeCard(fl.Field().String())
			return len(n) >= 12 && len(n) <= 19 && digitsRe.MatchString(n)
		})
	})
	return v
}

func Struct(s any) error {
	return Default().Struct(s)
}

func NormalizeCard(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

// Message turns a validation error into a single client-safe sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "mmyy":
		return fmt.Sprintf("%s must be MM/YY", fe.Field())
	case "cardnum":
		return fmt.Sprintf("%s must be 12 to 19 digits", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", fe.Field())
	case "min", "max", "len":
		return fmt.Sprintf("%s has an invalid length", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
