package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/render"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Totals, mean BMI and score, category breakdowns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		ov, err := analysis.Overview(records)
		if err != nil {
			return err
		}
		return emit(cmd, ov, render.OverviewSections(ov)...)
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}
