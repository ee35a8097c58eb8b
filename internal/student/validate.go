package student

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists every record that breaks the record invariants.
type ValidationError struct {
	Problems []Problem
}

// Problem is a single invariant violation.
type Problem struct {
	Index  int    // position in the input slice
	ID     string // record ID, possibly empty
	Field  string // json name of the offending field
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid records"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid record field(s)", len(e.Problems))
	lim := len(e.Problems)
	if lim > 5 {
		lim = 5
	}
	for _, p := range e.Problems[:lim] {
		fmt.Fprintf(&b, "; #%d", p.Index)
		if p.ID != "" {
			fmt.Fprintf(&b, " (%s)", p.ID)
		}
		fmt.Fprintf(&b, " %s: %s", p.Field, p.Reason)
	}
	if len(e.Problems) > lim {
		fmt.Fprintf(&b, "; and %d more", len(e.Problems)-lim)
	}
	return b.String()
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("enum", validEnum)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// validEnum accepts any field whose type reports membership of its closed set.
func validEnum(fl validator.FieldLevel) bool {
	if e, ok := fl.Field().Interface().(interface{ Valid() bool }); ok {
		return e.Valid()
	}
	return false
}

// Validate checks per-record invariants and ID uniqueness. It returns nil or
// a *ValidationError.
func Validate(records []Record) error {
	v := recordValidator()
	var problems []Problem
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if err := v.Struct(r); err != nil {
			verrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return fmt.Errorf("validate record %d: %w", i, err)
			}
			for _, fe := range verrs {
				problems = append(problems, Problem{Index: i, ID: r.ID, Field: fe.Field(), Reason: describe(fe)})
			}
		}
		if r.ID == "" {
			continue
		}
		if first, dup := seen[r.ID]; dup {
			problems = append(problems, Problem{Index: i, ID: r.ID, Field: "id", Reason: fmt.Sprintf("duplicate of record #%d", first)})
			continue
		}
		seen[r.ID] = i
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "enum":
		return fmt.Sprintf("value %v is not a known category", fe.Value())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
