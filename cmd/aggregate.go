package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/render"
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

var (
	aggBy    string
	aggField string
	aggPad   bool
	aggSplit string

	distBy    string
	distField string
	distPad   bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Count, mean, min, max and share of a field per category",
	Example: `  cohort aggregate --by bmi_category --field score
  cohort aggregate --by age --field bmi --sex female
  cohort aggregate --by age --split sex`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dim, err := student.ParseDimension(aggBy)
		if err != nil {
			return err
		}
		field, err := student.ParseField(aggField)
		if err != nil {
			return err
		}
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		if aggSplit != "" {
			split, err := student.ParseDimension(aggSplit)
			if err != nil {
				return err
			}
			res, err := analysis.AggregateSplit(records, dim, split, field)
			if err != nil {
				return err
			}
			return emit(cmd, res, render.SplitSection(dim, split, field, res))
		}
		var opts []analysis.GroupOption
		if aggPad {
			opts = append(opts, analysis.WithPadding())
		}
		res, err := analysis.AggregateBy(records, dim, field, opts...)
		if err != nil {
			return err
		}
		return emit(cmd, res, render.AggregateSection(dim, field, res))
	},
}

var distributionCmd = &cobra.Command{
	Use:     "distribution",
	Aliases: []string{"boxplot"},
	Short:   "Nearest-rank quartiles, extremes and mean of a field per category",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dim, err := student.ParseDimension(distBy)
		if err != nil {
			return err
		}
		field, err := student.ParseField(distField)
		if err != nil {
			return err
		}
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		opts := []analysis.DistributionOption{analysis.Parallel(parallelism())}
		if distPad {
			opts = append(opts, analysis.Padded())
		}
		res, err := analysis.DistributionBy(records, dim, field, opts...)
		if err != nil {
			return err
		}
		return emit(cmd, res, render.DistributionSection(dim, field, res))
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().StringVar(&aggBy, "by", "bmi_category", "dimension: bmi_category|sex|age|class_grade|intelligence_level|sport")
	aggregateCmd.Flags().StringVar(&aggField, "field", "intelligence_score", "field: bmi|intelligence_score|age|sport")
	aggregateCmd.Flags().BoolVar(&aggPad, "pad", false, "list empty categories too")
	aggregateCmd.Flags().StringVar(&aggSplit, "split", "", "second dimension to split each category by, e.g. sex")

	rootCmd.AddCommand(distributionCmd)
	distributionCmd.Flags().StringVar(&distBy, "by", "bmi_category", "dimension: bmi_category|sex|age|class_grade|intelligence_level|sport")
	distributionCmd.Flags().StringVar(&distField, "field", "intelligence_score", "field: bmi|intelligence_score|age|sport")
	distributionCmd.Flags().BoolVar(&distPad, "pad", false, "list empty categories too")
}
