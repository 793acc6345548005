package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	basePathPattern = regexp.MustCompile(`^/?[A-Za-z0-9._~-]+(?:/[A-Za-z0-9._~-]+)*/?$|^/$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("base_path", func(fl validator.FieldLevel) bool {
			return basePathPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig checks field rules and the cross-field stop range.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return gerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return gerrors.NewValidationError("config", err.Error(), err)
	}

	fe := ves[0]
	return gerrors.NewValidationError(fieldPath(fe), describe(fe), err)
}

// fieldPath turns "Config.store.backend" into "store.backend".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_unless":
		return "is required for this backend"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "hostname_port":
		return "must be a host:port address"
	case "base_path":
		return "must be a URL path such as /api"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gtefield":
		return "must not be below min_stops"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}
