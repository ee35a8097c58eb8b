package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/render"
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

var (
	ctRows string
	ctCols string

	profileBy string
)

var crosstabCmd = &cobra.Command{
	Use:   "crosstab",
	Short: "Counts and row shares over two dimensions",
	Long: `Cross-tabulates two dimensions, e.g. intelligence level within each BMI
category. Without --rows/--cols every standard pairing is shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := analysis.DefaultCrossTabs
		if ctRows != "" || ctCols != "" {
			if ctRows == "" || ctCols == "" {
				return fmt.Errorf("--rows and --cols must be given together")
			}
			rows, err := student.ParseDimension(ctRows)
			if err != nil {
				return err
			}
			cols, err := student.ParseDimension(ctCols)
			if err != nil {
				return err
			}
			pairs = [][2]student.Dimension{{rows, cols}}
		}
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		tabs := make([]*analysis.CrossTab, 0, len(pairs))
		sections := make([]render.Section, 0, len(pairs))
		for _, p := range pairs {
			ct, err := analysis.CrossTabulate(records, p[0], p[1])
			if err != nil {
				return err
			}
			tabs = append(tabs, ct)
			sections = append(sections, render.CrossTabSection(ct))
		}
		if len(tabs) == 1 {
			return emit(cmd, tabs[0], sections...)
		}
		return emit(cmd, tabs, sections...)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Score, BMI, age and sport share per category, scaled to 0-100",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dim, err := student.ParseDimension(profileBy)
		if err != nil {
			return err
		}
		records, err := loadRecords(cmd)
		if err != nil {
			return err
		}
		rows, err := analysis.Profile(records, dim)
		if err != nil {
			return err
		}
		return emit(cmd, rows, render.ProfileSection(dim, rows))
	},
}

func init() {
	rootCmd.AddCommand(crosstabCmd)
	crosstabCmd.Flags().StringVar(&ctRows, "rows", "", "row dimension")
	crosstabCmd.Flags().StringVar(&ctCols, "cols", "", "column dimension")

	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileBy, "by", "bmi_category", "dimension to profile")
}
