package gradient

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

	stopColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("stop_color", func(fl validator.FieldLevel) bool {
			return stopColorPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks the canonical invariants: at least two stops, every stop
// color in "#RRGGBB" form, positions and opacities within [0,1] and the
// angle within [0,360). Stop colors must already be expanded; Normalize does
// that.
func Validate(g Gradient) error {
	if err := validatorInstance().Struct(g); err != nil {
		return &InvalidError{Issues: issuesFrom(err), first: convertValidationError(err)}
	}
	return nil
}

// InvalidError lists every invariant a gradient violates. It unwraps to the
// domain error for the first issue.
type InvalidError struct {
	Issues []ValidationIssue
	first  error
}

func (e *InvalidError) Error() string { return e.first.Error() }

func (e *InvalidError) Unwrap() error { return e.first }

// ValidationIssue describes one failed invariant in a transport-friendly shape.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues lists every invariant g violates. It returns nil for a valid gradient.
func Issues(g Gradient) []ValidationIssue {
	return issuesFrom(validatorInstance().Struct(g))
}

func issuesFrom(err error) []ValidationIssue {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []ValidationIssue{{Field: "gradient", Message: err.Error()}}
	}

	issues := make([]ValidationIssue, 0, len(ves))
	for _, fe := range ves {
		issues = append(issues, ValidationIssue{Field: fieldPath(fe), Message: describe(fe)})
	}
	return issues
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return gerrors.NewInvalidGradient("gradient", err.Error())
	}

	fe := ves[0]
	field := fieldPath(fe)
	if fe.Tag() == "stop_color" {
		return withField(gerrors.NewInvalidColorFormat(fmt.Sprint(fe.Value()), nil), field)
	}
	return gerrors.NewInvalidGradient(field, describe(fe))
}

// fieldPath drops the root struct name: "Gradient.colorStops[1].position"
// becomes "colorStops[1].position".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("at least %s color stops are required", fe.Param())
	case "required":
		return "is required"
	case "stop_color":
		return "must be a hex color in #RRGGBB form"
	case "gte", "lte":
		if fe.Field() == "angle" {
			return "must be within [0,360)"
		}
		return "must be within [0,1]"
	case "lt":
		return "must be within [0,360)"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

func withField(err error, field string) error {
	var domainErr *gerrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.WithField(field)
	}
	return err
}

func stopField(index int, field string) string {
	return fmt.Sprintf("colorStops[%d].%s", index, field)
}
