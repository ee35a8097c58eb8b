package student

import (
	"fmt"
	"strings"
)

// Field is a numeric (or boolean-as-numeric) attribute statistics can be
// computed over.
type Field uint8

const (
	FieldBMI Field = iota + 1
	FieldIntelligenceScore
	FieldAge
	FieldSport
)

var fieldNames = [...]string{
	FieldBMI:               "bmi",
	FieldIntelligenceScore: "intelligence_score",
	FieldAge:               "age",
	FieldSport:             "sport",
}

var fieldAliases = map[string]Field{
	"bmi":                FieldBMI,
	"intelligence_score": FieldIntelligenceScore, "intelligence-score": FieldIntelligenceScore,
	"score": FieldIntelligenceScore, "raven": FieldIntelligenceScore,
	"age":   FieldAge,
	"sport": FieldSport, "plays_sport": FieldSport,
}

// Fields lists every field in the order used for correlation matrices.
func Fields() []Field {
	return []Field{FieldBMI, FieldIntelligenceScore, FieldAge, FieldSport}
}

// ParseField resolves a field by name.
func ParseField(s string) (Field, error) {
	if f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// ParseFields resolves a list of field names, failing on the first unknown one.
func ParseFields(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, n := range names {
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (f Field) Valid() bool { return f >= FieldBMI && f <= FieldSport }

// Boolean reports whether the field is a flag mapped through SportNumeric.
func (f Field) Boolean() bool { return f == FieldSport }

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("field(%d)", f)
	}
	return fieldNames[f]
}

func (f Field) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Value returns the record's value for f.
func (r Record) Value(f Field) (float64, error) {
	switch f {
	case FieldBMI:
		return r.BMI, nil
	case FieldIntelligenceScore:
		return r.IntelligenceScore, nil
	case FieldAge:
		return float64(r.Age), nil
	case FieldSport:
		return SportNumeric(r.PlaysSport), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownField, f)
}

// Values extracts f from every record, preserving input order.
func Values(records []Record, f Field) ([]float64, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, f)
	}
	out := make([]float64, len(records))
	for i, r := range records {
		v, err := r.Value(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
