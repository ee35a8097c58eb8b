package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/render"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Compare BMI, sex and sport groups and name the strongest factor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		in, err := analysis.Synthesize(records)
		if err != nil {
			return err
		}
		return emit(cmd, in, render.InsightSections(in)...)
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
