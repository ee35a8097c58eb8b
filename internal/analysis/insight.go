package analysis

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// Significance thresholds, in test-score points. These are study policy.
const (
	BMIDifferenceThreshold   = 5.0
	SexDifferenceThreshold   = 3.0
	SportDifferenceThreshold = 5.0
)

// Factor names one of the fixed comparisons.
type Factor uint8

const (
	NoFactor Factor = iota
	FactorBMI
	FactorSex
	FactorSport
)

var factorNames = [...]string{NoFactor: "none", FactorBMI: "bmi", FactorSex: "sex", FactorSport: "sport"}

func (f Factor) String() string {
	if int(f) < len(factorNames) {
		return factorNames[f]
	}
	return fmt.Sprintf("factor(%d)", f)
}

func (f Factor) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Comparison contrasts the mean score of two sides of a factor.
// Difference is Left − Right.
type Comparison struct {
	Factor      Factor  `json:"factor" yaml:"factor"`
	LeftLabel   string  `json:"left_label" yaml:"left_label"`
	RightLabel  string  `json:"right_label" yaml:"right_label"`
	Left        Value   `json:"left_mean" yaml:"left_mean"`
	Right       Value   `json:"right_mean" yaml:"right_mean"`
	LeftCount   int     `json:"left_count" yaml:"left_count"`
	RightCount  int     `json:"right_count" yaml:"right_count"`
	Difference  Value   `json:"difference" yaml:"difference"`
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	Significant bool    `json:"significant" yaml:"significant"`
}

// CompareMeans builds a Comparison from two aggregates of the same field.
// The difference exists only when both sides have data, and it is
// significant when its magnitude strictly exceeds threshold.
func CompareMeans(factor Factor, left, right AggregateResult, leftLabel, rightLabel string, threshold float64) Comparison {
	c := Comparison{
		Factor:     factor,
		LeftLabel:  leftLabel,
		RightLabel: rightLabel,
		Left:       left.Mean,
		Right:      right.Mean,
		LeftCount:  left.Count,
		RightCount: right.Count,
		Threshold:  threshold,
	}
	l, lok := left.Mean.Get()
	r, rok := right.Mean.Get()
	if lok && rok {
		d := l - r
		c.Difference = Some(d)
		c.Significant = math.Abs(d) > threshold
	}
	return c
}

// GreatestImpact returns the factor whose comparison has the largest
// absolute difference. Comparisons without a difference are skipped; ties
// keep the earlier comparison.
func GreatestImpact(comps []Comparison) Factor {
	best := NoFactor
	var bestAbs float64
	for _, c := range comps {
		d, ok := c.Difference.Get()
		if !ok {
			continue
		}
		if best == NoFactor || math.Abs(d) > bestAbs {
			best, bestAbs = c.Factor, math.Abs(d)
		}
	}
	return best
}

// Insights is the narrated summary of a collection.
type Insights struct {
	Total          int               `json:"total" yaml:"total"`
	Comparisons    []Comparison      `json:"comparisons" yaml:"comparisons"`
	GreatestImpact Factor            `json:"greatest_impact" yaml:"greatest_impact"`
	Correlation    Coefficient       `json:"bmi_score_correlation" yaml:"bmi_score_correlation"`
	Strength       Strength          `json:"strength" yaml:"strength"`
	Direction      Direction         `json:"direction" yaml:"direction"`
	AgeTrend       []AggregateResult `json:"age_trend" yaml:"age_trend"`
	Best           *AggregateResult  `json:"best_bmi_category,omitempty" yaml:"best_bmi_category,omitempty"`
	Worst          *AggregateResult  `json:"worst_bmi_category,omitempty" yaml:"worst_bmi_category,omitempty"`
}

// Comparison returns the comparison for f, if present.
func (in Insights) Comparison(f Factor) (Comparison, bool) {
	for _, c := range in.Comparisons {
		if c.Factor == f {
			return c, true
		}
	}
	return Comparison{}, false
}

// Synthesize runs the fixed comparisons on the intelligence score:
//
//	bmi:   normal − (underweight ∪ overweight ∪ obese), threshold 5
//	sex:   female − male, threshold 3
//	sport: plays − does not play, threshold 5
//
// plus the BMI–score correlation, the mean score per age and the best and
// worst BMI category by mean score.
func Synthesize(records []student.Record) (Insights, error) {
	const f = student.FieldIntelligenceScore
	in := Insights{Total: len(records)}

	byBMI, err := GroupBy(records, student.DimBMICategory)
	if err != nil {
		return Insights{}, err
	}
	normal := Select(byBMI, func(c student.Category) bool { return c == student.Normal.Category() })
	extreme := Select(byBMI, func(c student.Category) bool {
		b, ok := c.BMICategory()
		return ok && b.Extreme()
	})
	bmiCmp, err := compareSubsets(FactorBMI, normal, extreme, "normal", "extreme", BMIDifferenceThreshold)
	if err != nil {
		return Insights{}, err
	}

	bySex, err := GroupBy(records, student.DimSex)
	if err != nil {
		return Insights{}, err
	}
	female := Find(bySex, student.Female.Category())
	male := Find(bySex, student.Male.Category())
	sexCmp, err := compareSubsets(FactorSex, female.Records, male.Records, "female", "male", SexDifferenceThreshold)
	if err != nil {
		return Insights{}, err
	}

	bySport, err := GroupBy(records, student.DimSport)
	if err != nil {
		return Insights{}, err
	}
	plays := Find(bySport, student.SportCategory(true))
	rests := Find(bySport, student.SportCategory(false))
	sportCmp, err := compareSubsets(FactorSport, plays.Records, rests.Records, "sport", "no sport", SportDifferenceThreshold)
	if err != nil {
		return Insights{}, err
	}

	in.Comparisons = []Comparison{bmiCmp, sexCmp, sportCmp}
	in.GreatestImpact = GreatestImpact(in.Comparisons)

	// An undefined correlation is part of the result, not a failure.
	in.Correlation, _ = Pearson(records, student.FieldBMI, f)
	if in.Correlation.Defined {
		in.Strength, in.Direction = in.Correlation.Classify()
	}

	if in.AgeTrend, err = AggregateBy(records, student.DimAge, f); err != nil {
		return Insights{}, err
	}
	perBMI, err := AggregateBy(records, student.DimBMICategory, f)
	if err != nil {
		return Insights{}, err
	}
	if best, worst, ok := Extremes(perBMI); ok {
		in.Best, in.Worst = &best, &worst
	}
	return in, nil
}

func compareSubsets(factor Factor, left, right []student.Record, leftLabel, rightLabel string, threshold float64) (Comparison, error) {
	const f = student.FieldIntelligenceScore
	l, err := Aggregate(Group{Records: left}, f, 0)
	if err != nil {
		return Comparison{}, err
	}
	r, err := Aggregate(Group{Records: right}, f, 0)
	if err != nil {
		return Comparison{}, err
	}
	return CompareMeans(factor, l, r, leftLabel, rightLabel, threshold), nil
}
