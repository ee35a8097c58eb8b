package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

type column uint8

const (
	colID column = iota
	colAge
	colSex
	colClass
	colBMI
	colBMICategory
	colScore
	colLevel
	colSport
	numColumns
)

// names match the json tags of student.Record so problems read the same
// whatever the source format.
var columnNames = [numColumns]string{
	colID:          "id",
	colAge:         "age",
	colSex:         "sex",
	colClass:       "class_grade",
	colBMI:         "bmi",
	colBMICategory: "bmi_category",
	colScore:       "intelligence_score",
	colLevel:       "intelligence_level",
	colSport:       "plays_sport",
}

func (c column) String() string { return columnNames[c] }

// columnAliases maps normalized header names to columns. The survey export
// uses Romanian keys; both spellings with and without diacritics occur.
var columnAliases = map[string]column{
	"id": colID, "student_id": colID,
	"age": colAge, "vârsta": colAge, "varsta": colAge,
	"sex": colSex, "gender": colSex,
	"class": colClass, "class_grade": colClass, "grade": colClass, "clasa": colClass,
	"bmi": colBMI, "imc": colBMI,
	"bmi_category": colBMICategory, "categorie_imc": colBMICategory,
	"intelligence_score": colScore, "score": colScore, "raven": colScore,
	"rezultat_test_inteligență": colScore, "rezultat_test_inteligenta": colScore,
	"intelligence_level": colLevel, "nivel_inteligență": colLevel, "nivel_inteligenta": colLevel,
	"plays_sport": colSport, "sport": colSport,
	"practică_sport_extrascolar": colSport, "practica_sport_extrascolar": colSport,
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

func lookupColumn(name string) (column, bool) {
	c, ok := columnAliases[normalizeHeader(name)]
	return c, ok
}

// header maps each column to its position in a tabular row, -1 if absent.
type header [numColumns]int

func parseHeader(cells []string) (header, error) {
	var h header
	for i := range h {
		h[i] = -1
	}
	for i, name := range cells {
		if c, ok := lookupColumn(name); ok && h[c] < 0 {
			h[c] = i
		}
	}
	var missing []string
	for c := colAge; c < numColumns; c++ {
		if h[c] < 0 {
			missing = append(missing, c.String())
		}
	}
	if len(missing) > 0 {
		return h, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) cells(row []string) func(column) (string, bool) {
	return func(c column) (string, bool) {
		i := h[c]
		if i < 0 || i >= len(row) {
			return "", false
		}
		return row[i], true
	}
}

// recordBuilder turns loosely typed cells into records, collecting every
// problem instead of stopping at the first.
type recordBuilder struct {
	problems []student.Problem
}

func (b *recordBuilder) problem(idx int, id string, c column, format string, args ...any) {
	b.problems = append(b.problems, student.Problem{Index: idx, ID: id, Field: c.String(), Reason: fmt.Sprintf(format, args...)})
}

// build reads one record. A missing or blank id gets a generated UUID.
func (b *recordBuilder) build(idx int, get func(column) (string, bool)) student.Record {
	var r student.Record
	if v, ok := get(colID); ok && strings.TrimSpace(v) != "" {
		r.ID = strings.TrimSpace(v)
	} else {
		r.ID = uuid.NewString()
	}
	text := func(c column) (string, bool) {
		v, ok := get(c)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			b.problem(idx, r.ID, c, "is required")
			return "", false
		}
		return v, true
	}
	number := func(c column) (float64, bool) {
		v, ok := text(c)
		if !ok {
			return 0, false
		}
		x, ok := parseNumeric(v)
		if !ok {
			b.problem(idx, r.ID, c, "%q is not a number", v)
		}
		return x, ok
	}
	enum := func(c column, parse func(string) error) {
		v, ok := text(c)
		if !ok {
			return
		}
		if err := parse(v); err != nil {
			b.problem(idx, r.ID, c, "%v", err)
		}
	}

	if x, ok := number(colAge); ok {
		if x != math.Trunc(x) {
			b.problem(idx, r.ID, colAge, "%v is not a whole number", x)
		} else {
			r.Age = int(x)
		}
	}
	if x, ok := number(colBMI); ok {
		r.BMI = x
	}
	if x, ok := number(colScore); ok {
		r.IntelligenceScore = x
	}
	enum(colSex, func(s string) (err error) { r.Sex, err = student.ParseSex(s); return })
	enum(colClass, func(s string) (err error) { r.Class, err = student.ParseClassGrade(s); return })
	enum(colBMICategory, func(s string) (err error) { r.BMICategory, err = student.ParseBMICategory(s); return })
	enum(colLevel, func(s string) (err error) { r.IntelligenceLevel, err = student.ParseIntelligenceLevel(s); return })
	enum(colSport, func(s string) (err error) { r.PlaysSport, err = student.ParseSport(s); return })
	return r
}

func (b *recordBuilder) err() error {
	if len(b.problems) == 0 {
		return nil
	}
	return &student.ValidationError{Problems: b.problems}
}

// parseNumeric reads a number written with either decimal separator, as
// spreadsheet exports in a comma-decimal locale produce ("21,4").
func parseNumeric(s string) (float64, bool) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), "\u00a0", " ")
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.TrimSpace(raw)
	dec, thou := '.', rune(0)
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0 && cpos > dpos:
		dec, thou = ',', '.'
	case cpos >= 0 && dpos >= 0:
		thou = ','
	case cpos >= 0:
		dec = ','
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if thou != 0 {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
