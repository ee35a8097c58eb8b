package student

import (
	"fmt"
	"strings"
)

// Sex of a participant.
type Sex uint8

const (
	Male Sex = iota + 1
	Female
)

// ClassGrade is one of the four lower-secondary grades (5th through 8th).
type ClassGrade uint8

const (
	Fifth ClassGrade = iota + 1
	Sixth
	Seventh
	Eighth
)

// BMICategory is the pre-assigned weight-status label derived from BMI.
type BMICategory uint8

const (
	Underweight BMICategory = iota + 1
	Normal
	Overweight
	Obese
)

// IntelligenceLevel is the pre-assigned band of the intelligence test score.
type IntelligenceLevel uint8

const (
	Low IntelligenceLevel = iota + 1
	Medium
	AboveAverage
	Excellent
)

var (
	sexLabels   = [...]string{Male: "male", Female: "female"}
	classLabels = [...]string{Fifth: "5th", Sixth: "6th", Seventh: "7th", Eighth: "8th"}
	bmiLabels   = [...]string{Underweight: "underweight", Normal: "normal", Overweight: "overweight", Obese: "obese"}
	levelLabels = [...]string{Low: "low", Medium: "medium", AboveAverage: "above-average", Excellent: "excellent"}
)

// Aliases include the labels used by the source dataset (Romanian) so that
// exports from the survey load without a translation step.
var (
	sexAliases = map[string]Sex{
		"male": Male, "m": Male, "boy": Male, "băiat": Male, "baiat": Male,
		"female": Female, "f": Female, "girl": Female, "fată": Female, "fata": Female,
	}
	classAliases = map[string]ClassGrade{
		"5th": Fifth, "5": Fifth, "v": Fifth, "a v-a": Fifth,
		"6th": Sixth, "6": Sixth, "vi": Sixth, "a vi-a": Sixth,
		"7th": Seventh, "7": Seventh, "vii": Seventh, "a vii-a": Seventh,
		"8th": Eighth, "8": Eighth, "viii": Eighth, "a viii-a": Eighth,
	}
	bmiAliases = map[string]BMICategory{
		"underweight": Underweight, "subponderal": Underweight,
		"normal": Normal,
		"overweight": Overweight, "supraponderal": Overweight,
		"obese": Obese, "obez": Obese,
	}
	levelAliases = map[string]IntelligenceLevel{
		"low": Low, "scăzut": Low, "scazut": Low,
		"medium": Medium, "mediu": Medium,
		"above-average": AboveAverage, "above average": AboveAverage, "peste medie": AboveAverage,
		"excellent": Excellent, "foarte bun": Excellent,
	}
)

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func parseLabel[T ~uint8](kind, s string, aliases map[string]T) (T, error) {
	if v, ok := aliases[normalizeLabel(s)]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownCategory, kind, s)
}

func label[T ~uint8](labels []string, v T) string {
	if int(v) <= 0 || int(v) >= len(labels) {
		return fmt.Sprintf("invalid(%d)", v)
	}
	return labels[v]
}

// ParseSex accepts canonical and dataset labels, case-insensitively.
func ParseSex(s string) (Sex, error) { return parseLabel("sex", s, sexAliases) }

// ParseClassGrade accepts "5th".."8th", roman numerals and "a V-a" style labels.
func ParseClassGrade(s string) (ClassGrade, error) { return parseLabel("class", s, classAliases) }

// ParseBMICategory accepts canonical and dataset labels.
func ParseBMICategory(s string) (BMICategory, error) { return parseLabel("bmi category", s, bmiAliases) }

// ParseIntelligenceLevel accepts canonical and dataset labels.
func ParseIntelligenceLevel(s string) (IntelligenceLevel, error) {
	return parseLabel("intelligence level", s, levelAliases)
}

func (s Sex) String() string               { return label(sexLabels[:], s) }
func (c ClassGrade) String() string        { return label(classLabels[:], c) }
func (b BMICategory) String() string       { return label(bmiLabels[:], b) }
func (l IntelligenceLevel) String() string { return label(levelLabels[:], l) }

func (s Sex) Valid() bool               { return s >= Male && s <= Female }
func (c ClassGrade) Valid() bool        { return c >= Fifth && c <= Eighth }
func (b BMICategory) Valid() bool       { return b >= Underweight && b <= Obese }
func (l IntelligenceLevel) Valid() bool { return l >= Low && l <= Excellent }

// Extreme reports whether the category lies outside the normal range.
func (b BMICategory) Extreme() bool { return b.Valid() && b != Normal }

func (s Sex) MarshalText() ([]byte, error)               { return []byte(s.String()), nil }
func (c ClassGrade) MarshalText() ([]byte, error)        { return []byte(c.String()), nil }
func (b BMICategory) MarshalText() ([]byte, error)       { return []byte(b.String()), nil }
func (l IntelligenceLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (s *Sex) UnmarshalText(b []byte) error {
	v, err := ParseSex(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (c *ClassGrade) UnmarshalText(b []byte) error {
	v, err := ParseClassGrade(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (bc *BMICategory) UnmarshalText(b []byte) error {
	v, err := ParseBMICategory(string(b))
	if err != nil {
		return err
	}
	*bc = v
	return nil
}

func (l *IntelligenceLevel) UnmarshalText(b []byte) error {
	v, err := ParseIntelligenceLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
