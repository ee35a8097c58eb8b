package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/cohort-cli/internal/config"
	"github.com/KaramelBytes/cohort-cli/internal/dataset"
	"github.com/KaramelBytes/cohort-cli/internal/render"
	"github.com/KaramelBytes/cohort-cli/internal/student"
	"github.com/KaramelBytes/cohort-cli/internal/utils"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	dataPath  string
	outFormat string
	// Upstream selection applied before any analysis
	filterSex   string
	filterClass string
	filterAge   string
	filterSport string

	// Loaded configuration
	cfg *cfgpkg.Global
)

// defaultDatasets are looked up from the working directory upwards when
// neither --data nor dataset_path is set.
var defaultDatasets = []string{"students.json", filepath.Join("data", "students.json")}

var rootCmd = &cobra.Command{
	Use:   "cohort",
	Short: "cohort: BMI and intelligence-score analytics over student survey data",
	Long: `cohort loads a student survey export (JSON, YAML, CSV/TSV or XLSX) and reports
group means, box-plot distributions, Pearson correlations, cross-tabulations
and the headline findings comparing BMI category, sex and sport participation.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.cohort/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringVarP(&dataPath, "data", "d", "", "dataset file (.json, .yaml, .csv, .tsv, .xlsx); overrides dataset_path")
	f.StringVarP(&outFormat, "format", "f", "", "output format: table|markdown|json|yaml (overrides output_format)")
	f.StringVar(&filterSex, "sex", "all", "only students of this sex (male|female)")
	f.StringVar(&filterClass, "class", "all", "only students of this class (5th..8th)")
	f.StringVar(&filterAge, "age", "all", "only students of this age (11..15)")
	f.StringVar(&filterSport, "sport", "all", "only students who do (yes) or do not (no) play sport")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{OutputFormat: string(render.Table), LogLevel: "info"}
	}
	cfg = c
	setupLogging()
}

func setupLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveDataset picks the dataset path: --data, then dataset_path, then a
// students.json found from the working directory upwards.
func resolveDataset() (string, error) {
	if dataPath != "" {
		return dataPath, nil
	}
	if cfg != nil && cfg.DatasetPath != "" {
		return cfg.DatasetPath, nil
	}
	p, err := utils.FindUp("", defaultDatasets...)
	if err != nil {
		return "", fmt.Errorf("no dataset: pass --data or run 'cohort config set dataset_path <file>'")
	}
	return p, nil
}

// loadSelection loads path and applies the global filters.
func loadSelection(cmd *cobra.Command, path string) ([]student.Record, student.Filter, error) {
	filter, err := student.ParseFilter(filterSex, filterClass, filterAge, filterSport)
	if err != nil {
		return nil, student.Filter{}, fmt.Errorf("invalid filter: %w", err)
	}
	records, err := dataset.LoadFile(path)
	if err != nil {
		return nil, student.Filter{}, err
	}
	selected := filter.Apply(records)
	slog.Debug("selection", "component", "cmd", "dataset", path, "loaded", len(records), "selected", len(selected), "filters", filter.Labels())
	if len(selected) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: no students match the selected filters")
	}
	return selected, filter, nil
}

// loadRecords resolves the dataset and returns the filtered records.
func loadRecords(cmd *cobra.Command) ([]student.Record, error) {
	path, err := resolveDataset()
	if err != nil {
		return nil, err
	}
	records, _, err := loadSelection(cmd, path)
	return records, err
}

func outputFormat() (render.Format, error) {
	if outFormat != "" {
		return render.ParseFormat(outFormat)
	}
	if cfg != nil {
		return render.ParseFormat(cfg.OutputFormat)
	}
	return render.Table, nil
}

// parallelism is parallel_groups, or one worker per CPU when unset.
func parallelism() int {
	if cfg != nil && cfg.ParallelGroups > 0 {
		return cfg.ParallelGroups
	}
	return runtime.GOMAXPROCS(0)
}

// emit writes v in the selected format; human formats draw sections.
func emit(cmd *cobra.Command, v any, sections ...render.Section) error {
	f, err := outputFormat()
	if err != nil {
		return err
	}
	return render.Write(cmd.OutOrStdout(), f, v, sections...)
}
