// Package schema validates the style fragment addressed to a checker.
//
// A checker declares its fragment shape as a Go struct with mapstructure tags
// for field names and validator tags for value rules. Decode rejects unknown
// keys and type mismatches, then runs the value rules, and reports every
// problem in one ValidationError.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// ValidationError lists why a fragment was rejected.
type ValidationError struct {
	Name     string
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid style for %s: %s", e.Name, strings.Join(e.Problems, "; "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "section_field", func(fl validator.FieldLevel) bool {
		return SectionFieldProblem(fl.Field().String()) == ""
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("schema: cannot register validation %q: %v", tag, err))
	}
}

// Decode fills target (a pointer) from fragment. name identifies the
// fragment in the returned *ValidationError.
func Decode(name string, fragment any, target any) error {
	if fragment == nil {
		fragment = map[string]any{}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      target,
	})
	if err != nil {
		return fmt.Errorf("schema: cannot build decoder for %s: %w", name, err)
	}
	if err := decoder.Decode(fragment); err != nil {
		return &ValidationError{Name: name, Problems: decodeProblems(err)}
	}

	if reflect.Indirect(reflect.ValueOf(target)).Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(target); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("schema: cannot validate %s: %w", name, err)
		}
		problems := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, fieldProblem(fe))
		}
		sort.Strings(problems)
		return &ValidationError{Name: name, Problems: problems}
	}
	return nil
}

// Tree decodes a free-form fragment, which only has to be a table.
func Tree(name string, fragment any) (map[string]any, error) {
	tree := map[string]any{}
	if fragment == nil {
		return tree, nil
	}
	m, ok := fragment.(map[string]any)
	if !ok {
		return nil, &ValidationError{Name: name, Problems: []string{
			fmt.Sprintf("expected a table, got %T", fragment),
		}}
	}
	for k, v := range m {
		tree[k] = v
	}
	return tree, nil
}

// SectionFieldProblem explains why value is not in "section.field" form, or
// returns "" when it is.
func SectionFieldProblem(value string) string {
	const common = "Use this format: section_name.field_name"
	if !strings.Contains(value, ".") {
		return "Dot is missing. " + common
	}
	parts := strings.Split(value, ".")
	if len(parts) > 2 {
		return "There's more than one dot. " + common
	}
	if strings.TrimSpace(parts[0]) == "" {
		return "Empty section name. " + common
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "Empty field name. " + common
	}
	return ""
}

func fieldProblem(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "Missing data for required field."
	case "filled":
		msg = "Shorter than minimum length 1."
	case "json":
		msg = "Invalid JSON."
	case "section_field":
		msg = SectionFieldProblem(fmt.Sprint(fe.Value()))
	default:
		msg = fmt.Sprintf("Failed the %q rule.", fe.Tag())
	}
	return field + ": " + msg
}

func decodeProblems(err error) []string {
	var problems []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if line == "" || strings.HasPrefix(line, "decoding failed") || strings.HasSuffix(line, "error(s) decoding:") {
			continue
		}
		problems = append(problems, line)
	}
	if len(problems) == 0 {
		problems = append(problems, err.Error())
	}
	sort.Strings(problems)
	return problems
}
