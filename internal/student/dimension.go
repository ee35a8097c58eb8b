package student

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension is a categorical axis records can be partitioned along.
type Dimension uint8

const (
	DimBMICategory Dimension = iota + 1
	DimSex
	DimAge
	DimClassGrade
	DimIntelligenceLevel
	DimSport
)

var dimensionNames = [...]string{
	DimBMICategory:       "bmi_category",
	DimSex:               "sex",
	DimAge:               "age",
	DimClassGrade:        "class_grade",
	DimIntelligenceLevel: "intelligence_level",
	DimSport:             "sport",
}

var dimensionAliases = map[string]Dimension{
	"bmi_category": DimBMICategory, "bmi-category": DimBMICategory, "bmi": DimBMICategory,
	"sex": DimSex, "gender": DimSex,
	"age": DimAge,
	"class_grade": DimClassGrade, "class-grade": DimClassGrade, "class": DimClassGrade,
	"intelligence_level": DimIntelligenceLevel, "intelligence-level": DimIntelligenceLevel, "level": DimIntelligenceLevel,
	"sport": DimSport, "plays_sport": DimSport,
}

// Dimensions lists every dimension in a stable order.
func Dimensions() []Dimension {
	return []Dimension{DimBMICategory, DimSex, DimAge, DimClassGrade, DimIntelligenceLevel, DimSport}
}

// ParseDimension resolves a dimension by name.
func ParseDimension(s string) (Dimension, error) {
	if d, ok := dimensionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

func (d Dimension) Valid() bool { return d >= DimBMICategory && d <= DimSport }

func (d Dimension) String() string {
	if !d.Valid() {
		return fmt.Sprintf("dimension(%d)", d)
	}
	return dimensionNames[d]
}

func (d Dimension) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// size is the number of categories in the dimension's fixed enumeration.
func (d Dimension) size() int {
	switch d {
	case DimBMICategory, DimClassGrade, DimIntelligenceLevel:
		return 4
	case DimSex, DimSport:
		return 2
	case DimAge:
		return MaxAge - MinAge + 1
	}
	return 0
}

// Categories returns the dimension's categories in their fixed order, e.g.
// underweight, normal, overweight, obese. Ages run 11 through 15 and sport
// lists participants who play before those who do not.
func (d Dimension) Categories() []Category {
	n := d.size()
	out := make([]Category, n)
	for i := range out {
		out[i] = Category{dim: d, ord: uint8(i + 1)}
	}
	return out
}

// ParseCategory resolves a category label within the dimension.
func (d Dimension) ParseCategory(s string) (Category, error) {
	if !d.Valid() {
		return Category{}, fmt.Errorf("%w: %d", ErrUnknownDimension, d)
	}
	want := normalizeLabel(s)
	for _, c := range d.Categories() {
		if c.String() == want {
			return c, nil
		}
	}
	var (
		ord uint8
		err error
	)
	switch d {
	case DimBMICategory:
		var v BMICategory
		v, err = ParseBMICategory(s)
		ord = uint8(v)
	case DimSex:
		var v Sex
		v, err = ParseSex(s)
		ord = uint8(v)
	case DimClassGrade:
		var v ClassGrade
		v, err = ParseClassGrade(s)
		ord = uint8(v)
	case DimIntelligenceLevel:
		var v IntelligenceLevel
		v, err = ParseIntelligenceLevel(s)
		ord = uint8(v)
	case DimAge:
		age, convErr := strconv.Atoi(want)
		if convErr != nil || age < MinAge || age > MaxAge {
			return Category{}, fmt.Errorf("%w: age %q", ErrUnknownCategory, s)
		}
		ord = uint8(age - MinAge + 1)
	case DimSport:
		plays, convErr := ParseSport(s)
		if convErr != nil {
			return Category{}, convErr
		}
		ord = sportOrdinal(plays)
	}
	if err != nil {
		return Category{}, err
	}
	return Category{dim: d, ord: ord}, nil
}

// Category is one value of a dimension. The zero Category belongs to no
// dimension; valid categories come from Dimension.Categories,
// Dimension.ParseCategory or Record.Category.
type Category struct {
	dim Dimension
	ord uint8
}

// Dimension returns the axis the category belongs to.
func (c Category) Dimension() Dimension { return c.dim }

// Index is the zero-based position of the category in its dimension's order.
func (c Category) Index() int { return int(c.ord) - 1 }

func (c Category) IsZero() bool { return c.dim == 0 }

func (c Category) String() string {
	switch c.dim {
	case DimBMICategory:
		return BMICategory(c.ord).String()
	case DimSex:
		return Sex(c.ord).String()
	case DimClassGrade:
		return ClassGrade(c.ord).String()
	case DimIntelligenceLevel:
		return IntelligenceLevel(c.ord).String()
	case DimAge:
		return strconv.Itoa(MinAge + int(c.ord) - 1)
	case DimSport:
		if c.ord == 1 {
			return "yes"
		}
		return "no"
	}
	return ""
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func sportOrdinal(plays bool) uint8 {
	if plays {
		return 1
	}
	return 2
}

// ParseSport reads a sport flag from yes/no, true/false, 1/0 or "da/nu".
func ParseSport(s string) (bool, error) {
	switch normalizeLabel(s) {
	case "yes", "y", "true", "1", "da", "with":
		return true, nil
	case "no", "n", "false", "0", "nu", "without":
		return false, nil
	}
	return false, fmt.Errorf("%w: sport %q", ErrUnknownCategory, s)
}

// Category returns the record's category along d.
func (r Record) Category(d Dimension) (Category, error) {
	var ord uint8
	switch d {
	case DimBMICategory:
		if !r.BMICategory.Valid() {
			return Category{}, fmt.Errorf("record %s: %w: bmi category %d", r.ID, ErrUnknownCategory, r.BMICategory)
		}
		ord = uint8(r.BMICategory)
	case DimSex:
		if !r.Sex.Valid() {
			return Category{}, fmt.Errorf("record %s: %w: sex %d", r.ID, ErrUnknownCategory, r.Sex)
		}
		ord = uint8(r.Sex)
	case DimAge:
		if r.Age < MinAge || r.Age > MaxAge {
			return Category{}, fmt.Errorf("record %s: %w: age %d", r.ID, ErrUnknownCategory, r.Age)
		}
		ord = uint8(r.Age - MinAge + 1)
	case DimClassGrade:
		if !r.Class.Valid() {
			return Category{}, fmt.Errorf("record %s: %w: class %d", r.ID, ErrUnknownCategory, r.Class)
		}
		ord = uint8(r.Class)
	case DimIntelligenceLevel:
		if !r.IntelligenceLevel.Valid() {
			return Category{}, fmt.Errorf("record %s: %w: intelligence level %d", r.ID, ErrUnknownCategory, r.IntelligenceLevel)
		}
		ord = uint8(r.IntelligenceLevel)
	case DimSport:
		ord = sportOrdinal(r.PlaysSport)
	default:
		return Category{}, fmt.Errorf("%w: %d", ErrUnknownDimension, d)
	}
	return Category{dim: d, ord: ord}, nil
}

// Category returns b as a category of DimBMICategory.
func (b BMICategory) Category() Category { return Category{dim: DimBMICategory, ord: uint8(b)} }

// Category returns s as a category of DimSex.
func (s Sex) Category() Category { return Category{dim: DimSex, ord: uint8(s)} }

// Category returns c as a category of DimClassGrade.
func (c ClassGrade) Category() Category { return Category{dim: DimClassGrade, ord: uint8(c)} }

// Category returns l as a category of DimIntelligenceLevel.
func (l IntelligenceLevel) Category() Category {
	return Category{dim: DimIntelligenceLevel, ord: uint8(l)}
}

// SportCategory returns the DimSport category for the flag.
func SportCategory(plays bool) Category { return Category{dim: DimSport, ord: sportOrdinal(plays)} }

// BMICategory returns the BMI label behind c; ok is false for other dimensions.
func (c Category) BMICategory() (b BMICategory, ok bool) {
	return BMICategory(c.ord), c.dim == DimBMICategory
}
