package analysis

import (
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// Normalization bounds for the category profile. Each axis is rescaled to
// 0–100 so unlike units can share one chart.
const (
	ProfileBMIFloor   = 15.0
	ProfileBMICeiling = 35.0
)

// ProfileRow is a category's mean score, BMI, age and sport share, each
// rescaled to 0–100.
type ProfileRow struct {
	Key   GroupKey `json:"key" yaml:"key"`
	Count int      `json:"count" yaml:"count"`
	Score Value    `json:"score" yaml:"score"`
	BMI   Value    `json:"bmi" yaml:"bmi"`
	Age   Value    `json:"age" yaml:"age"`
	Sport Value    `json:"sport" yaml:"sport"`
}

// Profile computes normalized means per category of dim:
// score/60, (bmi−15)/(35−15), (age−11)/(15−11) and the sport share, all ×100.
// Values are not clamped, so a mean outside the bounds shows as such.
func Profile(records []student.Record, dim student.Dimension) ([]ProfileRow, error) {
	groups, err := GroupBy(records, dim)
	if err != nil {
		return nil, err
	}
	scale := func(lo, hi float64) func(float64) float64 {
		return func(v float64) float64 { return (v - lo) / (hi - lo) * 100 }
	}
	axes := []struct {
		field student.Field
		scale func(float64) float64
		set   func(*ProfileRow, Value)
	}{
		{student.FieldIntelligenceScore, scale(student.MinScore, student.MaxScore), func(p *ProfileRow, v Value) { p.Score = v }},
		{student.FieldBMI, scale(ProfileBMIFloor, ProfileBMICeiling), func(p *ProfileRow, v Value) { p.BMI = v }},
		{student.FieldAge, scale(student.MinAge, student.MaxAge), func(p *ProfileRow, v Value) { p.Age = v }},
		{student.FieldSport, scale(0, 1), func(p *ProfileRow, v Value) { p.Sport = v }},
	}
	out := make([]ProfileRow, len(groups))
	for i, g := range groups {
		out[i] = ProfileRow{Key: g.Key, Count: g.Len()}
		for _, ax := range axes {
			a, err := Aggregate(g, ax.field, 0)
			if err != nil {
				return nil, err
			}
			if m, ok := a.Mean.Get(); ok {
				ax.set(&out[i], Some(ax.scale(m)))
			}
		}
	}
	return out, nil
}
