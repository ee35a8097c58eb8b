// Package student defines the participant record and the closed sets of
// dimensions, categories and numeric fields the analysis layer works over.
package student

// Age bounds of the surveyed cohort.
const (
	MinAge = 11
	MaxAge = 15
)

// Bounds of the intelligence test scale.
const (
	MinScore = 0
	MaxScore = 60
)

// Record is one survey participant. Records are plain values; nothing in this
// module mutates a record after it has been loaded.
//
// BMICategory and IntelligenceLevel are classifications assigned by the data
// source. They are read as given and never recomputed from BMI or score.
type Record struct {
	ID                string            `json:"id" yaml:"id" validate:"required"`
	Age               int               `json:"age" yaml:"age" validate:"min=11,max=15"`
	Sex               Sex               `json:"sex" yaml:"sex" validate:"enum"`
	Class             ClassGrade        `json:"class_grade" yaml:"class_grade" validate:"enum"`
	BMI               float64           `json:"bmi" yaml:"bmi" validate:"gt=0"`
	BMICategory       BMICategory       `json:"bmi_category" yaml:"bmi_category" validate:"enum"`
	IntelligenceScore float64           `json:"intelligence_score" yaml:"intelligence_score" validate:"min=0,max=60"`
	IntelligenceLevel IntelligenceLevel `json:"intelligence_level" yaml:"intelligence_level" validate:"enum"`
	PlaysSport        bool              `json:"plays_sport" yaml:"plays_sport"`
}

// SportNumeric maps the sport flag onto {0,1} so it can take part in means and
// correlations. This is the only place a boolean becomes a number.
func SportNumeric(plays bool) float64 {
	if plays {
		return 1
	}
	return 0
}
