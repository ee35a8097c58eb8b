package analysis

import (
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// OverviewResult is the headline summary of a collection.
type OverviewResult struct {
	Total              int         `json:"total" yaml:"total"`
	MeanBMI            Value       `json:"mean_bmi" yaml:"mean_bmi"`
	MeanScore          Value       `json:"mean_score" yaml:"mean_score"`
	SportShare         Value       `json:"sport_percentage" yaml:"sport_percentage"`
	BMICategories      []Share     `json:"bmi_categories" yaml:"bmi_categories"`
	IntelligenceLevels []Share     `json:"intelligence_levels" yaml:"intelligence_levels"`
	Sexes              []Share     `json:"sexes" yaml:"sexes"`
	Correlation        Coefficient `json:"bmi_score_correlation" yaml:"bmi_score_correlation"`
}

// Overview computes totals, overall means, the category breakdowns and the
// BMI–score correlation. Category lists are padded so every label appears.
func Overview(records []student.Record) (OverviewResult, error) {
	all := All(records)
	ov := OverviewResult{Total: len(records)}
	for _, x := range []struct {
		f   student.Field
		dst *Value
	}{
		{student.FieldBMI, &ov.MeanBMI},
		{student.FieldIntelligenceScore, &ov.MeanScore},
	} {
		a, err := Aggregate(all, x.f, 0)
		if err != nil {
			return OverviewResult{}, err
		}
		*x.dst = a.Mean
	}
	sport, err := Aggregate(all, student.FieldSport, 0)
	if err != nil {
		return OverviewResult{}, err
	}
	if m, ok := sport.Mean.Get(); ok {
		ov.SportShare = Some(m * 100)
	}
	if ov.BMICategories, err = Counts(records, student.DimBMICategory, WithPadding()); err != nil {
		return OverviewResult{}, err
	}
	if ov.IntelligenceLevels, err = Counts(records, student.DimIntelligenceLevel, WithPadding()); err != nil {
		return OverviewResult{}, err
	}
	if ov.Sexes, err = Counts(records, student.DimSex, WithPadding()); err != nil {
		return OverviewResult{}, err
	}
	ov.Correlation, _ = Pearson(records, student.FieldBMI, student.FieldIntelligenceScore)
	return ov, nil
}
