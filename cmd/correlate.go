package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/render"
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

var corrFields string

// pairResult is the machine-readable form of a single correlation.
type pairResult struct {
	A         student.Field        `json:"a" yaml:"a"`
	B         student.Field        `json:"b" yaml:"b"`
	R         analysis.Coefficient `json:"r" yaml:"r"`
	Strength  string               `json:"strength" yaml:"strength"`
	Undefined string               `json:"undefined_reason,omitempty" yaml:"undefined_reason,omitempty"`
}

var correlateCmd = &cobra.Command{
	Use:   "correlate [field field]",
	Short: "Pearson correlation of two fields, or the matrix over --fields",
	Example: `  cohort correlate bmi score
  cohort correlate --fields bmi,score,sport`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected two fields or none, got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 {
			return correlatePair(cmd, args[0], args[1])
		}
		fields, err := student.ParseFields(splitList(corrFields))
		if err != nil {
			return err
		}
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		m, err := analysis.CorrelationMatrix(records, fields)
		if err != nil {
			return err
		}
		return emit(cmd, m, render.MatrixSections(m)...)
	},
}

func correlatePair(cmd *cobra.Command, a, b string) error {
	fa, err := student.ParseField(a)
	if err != nil {
		return err
	}
	fb, err := student.ParseField(b)
	if err != nil {
		return err
	}
	records, err := loadRecords(cmd)
	if err != nil {
		return err
	}
	res := pairResult{A: fa, B: fb}
	res.R, err = analysis.Pearson(records, fa, fb)
	if err != nil {
		// an undefined coefficient is a result, not a failure
		res.Undefined = err.Error()
	}
	res.Strength = render.Strength(res.R)
	sec := render.Section{
		Title:  "CORRELATION",
		Header: []string{"Pair", "r", "Strength"},
		Rows:   [][]string{{fmt.Sprintf("%s ~ %s", fa, fb), render.Coef(res.R), res.Strength}},
	}
	if res.Undefined != "" {
		sec.Notes = []string{res.Undefined}
	}
	return emit(cmd, res, sec)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVar(&corrFields, "fields", "bmi,intelligence_score,age,sport", "comma-separated fields for the matrix")
}
