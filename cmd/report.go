package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/render"
	"github.com/KaramelBytes/cohort-cli/internal/student"
	"github.com/KaramelBytes/cohort-cli/internal/utils"
)

var (
	reportOutput string
	reportSave   bool

	rbOutDir string
	rbQuiet  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full report: overview, aggregates, distributions, correlations, cross-tabs, profile and insights",
	Example: `  cohort report -d students.xlsx
  cohort report -d students.json -f markdown --save
  cohort report -d students.json -f json -o out/report.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDataset()
		if err != nil {
			return err
		}
		f, err := outputFormat()
		if err != nil {
			return err
		}
		records, filter, err := loadSelection(cmd, path)
		if err != nil {
			return err
		}
		b, err := buildReport(path, records, filter, f)
		if err != nil {
			return err
		}

		dest := reportOutput
		if dest == "" && reportSave {
			dest = uniquePath(filepath.Join(cfg.ReportsDir, reportBase(path)+reportExt(f)))
		}
		if dest == "" {
			_, err := cmd.OutOrStdout().Write(b)
			return err
		}
		if err := writeReport(dest, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", dest)
		return nil
	},
}

var reportBatchCmd = &cobra.Command{
	Use:   "report-batch <files...>",
	Short: "Write one report per dataset file, with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		f, err := outputFormat()
		if err != nil {
			return err
		}
		outDir := rbOutDir
		if outDir == "" {
			outDir = cfg.ReportsDir
		}
		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !rbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			records, filter, err := loadSelection(cmd, path)
			if err != nil {
				return err
			}
			b, err := buildReport(path, records, filter, f)
			if err != nil {
				return err
			}
			want := filepath.Join(outDir, reportBase(path)+reportExt(f))
			dest := uniquePath(want)
			if dest != want && !rbQuiet {
				fmt.Fprintf(out, "⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(dest))
			}
			if err := writeReport(dest, b); err != nil {
				return err
			}
			if !rbQuiet {
				fmt.Fprintf(out, "✓ Wrote report to %s\n", dest)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to this file instead of stdout")
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "write the report into reports_dir")

	rootCmd.AddCommand(reportBatchCmd)
	reportBatchCmd.Flags().StringVar(&rbOutDir, "out-dir", "", "directory for reports (default reports_dir)")
	reportBatchCmd.Flags().BoolVar(&rbQuiet, "quiet", false, "suppress progress and non-essential output")
}

// buildReport computes the report over records and renders it in format f.
func buildReport(path string, records []student.Record, filter student.Filter, f render.Format) ([]byte, error) {
	rep, err := analysis.BuildReport(records, analysis.ReportOptions{
		ID:       uuid.NewString(),
		Name:     filepath.Base(path),
		Filters:  filter.Labels(),
		Parallel: parallelism(),
	})
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", filepath.Base(path), err)
	}
	var buf bytes.Buffer
	if err := render.Write(&buf, f, rep, render.ReportSections(rep)...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeReport(dest string, b []byte) error {
	if err := utils.EnsureDir(filepath.Dir(dest)); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return utils.SafeWriteFile(dest, b)
}

// expandInputs resolves globs, keeps literal paths that exist and returns
// the unique files sorted.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func reportBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".report"
}

func reportExt(f render.Format) string {
	switch f {
	case render.Markdown:
		return ".md"
	case render.JSON:
		return ".json"
	case render.YAML:
		return ".yaml"
	}
	return ".txt"
}

// uniquePath returns p, or p with a __N suffix before the extension when p
// already exists.
func uniquePath(p string) string {
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return p
	}
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for idx := 2; ; idx++ {
		cand := fmt.Sprintf("%s__%d%s", stem, idx, ext)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}
