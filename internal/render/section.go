package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// Section is one titled table with optional free-text notes. Every view is
// reduced to sections before it is drawn as a terminal table or Markdown.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
	Notes  []string
}

// OverviewSections summarizes totals and category breakdowns.
func OverviewSections(ov analysis.OverviewResult) []Section {
	head := Section{
		Title:  "OVERVIEW",
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Students", strconv.Itoa(ov.Total)},
			{"Mean BMI", Num(ov.MeanBMI)},
			{"Mean score", Num(ov.MeanScore)},
			{"Plays sport", Pct(ov.SportShare)},
			{"BMI ~ score", fmt.Sprintf("%s (%s)", Coef(ov.Correlation), Strength(ov.Correlation))},
		},
	}
	return []Section{
		head,
		shareSection("BMI CATEGORIES", ov.BMICategories),
		shareSection("INTELLIGENCE LEVELS", ov.IntelligenceLevels),
		shareSection("SEX", ov.Sexes),
	}
}

func shareSection(title string, shares []analysis.Share) Section {
	s := Section{Title: title, Header: []string{"Category", "Count", "Share"}}
	for _, sh := range shares {
		s.Rows = append(s.Rows, []string{sh.Key.Label(), strconv.Itoa(sh.Count), Pct(sh.Percentage)})
	}
	return s
}

// AggregateSection tabulates f per category of dim.
func AggregateSection(dim student.Dimension, f student.Field, results []analysis.AggregateResult) Section {
	s := Section{
		Title:  fmt.Sprintf("%s BY %s", upper(f.String()), upper(dim.String())),
		Header: []string{"Category", "Count", "Mean", "Min", "Max", "Std dev", "Share"},
	}
	for _, r := range results {
		s.Rows = append(s.Rows, []string{
			r.Key.Label(), strconv.Itoa(r.Count), Num(r.Mean), Num(r.Min), Num(r.Max), Num(r.StdDev), Pct(r.Percentage),
		})
	}
	return s
}

// SplitSection tabulates f per category of dim with one mean and count
// column pair per category of split.
func SplitSection(dim, split student.Dimension, f student.Field, results []analysis.SplitResult) Section {
	s := Section{
		Title:  fmt.Sprintf("%s BY %s AND %s", upper(f.String()), upper(dim.String()), upper(split.String())),
		Header: []string{"Category", "Count", "Mean"},
	}
	for _, c := range split.Categories() {
		s.Header = append(s.Header, "Mean "+c.String(), "n "+c.String())
	}
	for _, r := range results {
		row := []string{r.Key.Label(), strconv.Itoa(r.Count), Num(r.Mean)}
		for _, sub := range r.Split {
			row = append(row, Num(sub.Mean), strconv.Itoa(sub.Count))
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// DistributionSection tabulates box-plot statistics of f per category.
func DistributionSection(dim student.Dimension, f student.Field, results []analysis.DistributionResult) Section {
	s := Section{
		Title:  fmt.Sprintf("%s DISTRIBUTION BY %s", upper(f.String()), upper(dim.String())),
		Header: []string{"Category", "Count", "Min", "Q1", "Median", "Q3", "Max", "Mean"},
		Notes:  []string{"Quartiles use the nearest-rank rule sorted[floor(n*p)]."},
	}
	for _, d := range results {
		s.Rows = append(s.Rows, []string{
			d.Key.Label(), strconv.Itoa(d.Count), Num(d.Min), Num(d.Q1), Num(d.Median), Num(d.Q3), Num(d.Max), Num(d.Mean),
		})
	}
	return s
}

// MatrixSections draws the correlation matrix and its pairs ranked by |r|.
func MatrixSections(m *analysis.Matrix) []Section {
	grid := Section{Title: "CORRELATIONS", Header: []string{""}}
	for _, f := range m.Fields {
		grid.Header = append(grid.Header, f.String())
	}
	for i, f := range m.Fields {
		row := []string{f.String()}
		for j := range m.Fields {
			row = append(row, Coef(m.At(i, j).Coefficient))
		}
		grid.Rows = append(grid.Rows, row)
	}
	pairs := Section{Title: "CORRELATION PAIRS", Header: []string{"Pair", "r", "Strength"}}
	for _, p := range m.Pairs() {
		pairs.Rows = append(pairs.Rows, []string{fmt.Sprintf("%s ~ %s", p.A, p.B), Coef(p.R), Strength(p.R)})
		if p.Err != nil {
			pairs.Notes = append(pairs.Notes, p.Err.Error())
		}
	}
	return []Section{grid, pairs}
}

// CrossTabSection shows counts with row shares for each column category.
func CrossTabSection(ct *analysis.CrossTab) Section {
	s := Section{
		Title:  fmt.Sprintf("%s BY %s", upper(ct.Cols.String()), upper(ct.Rows.String())),
		Header: []string{ct.Rows.String(), "Total"},
	}
	for _, c := range ct.Columns {
		s.Header = append(s.Header, c.String())
	}
	for _, line := range ct.Lines {
		row := []string{line.Key.Label(), strconv.Itoa(line.Total)}
		for _, c := range line.Cells {
			row = append(row, fmt.Sprintf("%d (%s)", c.Count, Pct(c.Share)))
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// ProfileSection shows the 0–100 normalized category profile.
func ProfileSection(dim student.Dimension, rows []analysis.ProfileRow) Section {
	s := Section{
		Title:  fmt.Sprintf("PROFILE BY %s", upper(dim.String())),
		Header: []string{"Category", "Count", "Score", "BMI", "Age", "Sport"},
		Notes: []string{fmt.Sprintf("Axes scaled to 0-100: score/%d, (bmi-%.0f)/%.0f, (age-%d)/%d, sport share.",
			student.MaxScore, analysis.ProfileBMIFloor, analysis.ProfileBMICeiling-analysis.ProfileBMIFloor,
			student.MinAge, student.MaxAge-student.MinAge)},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []string{r.Key.Label(), strconv.Itoa(r.Count), Num(r.Score), Num(r.BMI), Num(r.Age), Num(r.Sport)})
	}
	return s
}

// InsightSections narrates the comparisons and supporting findings.
func InsightSections(in analysis.Insights) []Section {
	cmp := Section{
		Title:  "INSIGHTS",
		Header: []string{"Factor", "Left", "Right", "Difference", "Threshold", "Significant"},
	}
	for _, c := range in.Comparisons {
		sig := "no"
		if c.Significant {
			sig = "yes"
		}
		cmp.Rows = append(cmp.Rows, []string{
			c.Factor.String(),
			fmt.Sprintf("%s %s (n=%d)", c.LeftLabel, Num(c.Left), c.LeftCount),
			fmt.Sprintf("%s %s (n=%d)", c.RightLabel, Num(c.Right), c.RightCount),
			Signed(c.Difference),
			fmt.Sprintf("%.0f", c.Threshold),
			sig,
		})
		cmp.Notes = append(cmp.Notes, narrate(c))
	}
	if in.GreatestImpact != analysis.NoFactor {
		cmp.Notes = append(cmp.Notes, fmt.Sprintf("Greatest impact on the score: %s.", in.GreatestImpact))
	}
	cmp.Notes = append(cmp.Notes, fmt.Sprintf("BMI ~ score correlation: %s (%s).", Coef(in.Correlation), Strength(in.Correlation)))
	if in.Best != nil && in.Worst != nil {
		cmp.Notes = append(cmp.Notes, fmt.Sprintf("Best BMI category: %s (%s); worst: %s (%s).",
			in.Best.Key.Label(), Num(in.Best.Mean), in.Worst.Key.Label(), Num(in.Worst.Mean)))
	}

	trend := Section{Title: "SCORE BY AGE", Header: []string{"Age", "Count", "Mean score"}}
	for _, a := range in.AgeTrend {
		trend.Rows = append(trend.Rows, []string{a.Key.Label(), strconv.Itoa(a.Count), Num(a.Mean)})
	}
	return []Section{cmp, trend}
}

func narrate(c analysis.Comparison) string {
	d, ok := c.Difference.Get()
	if !ok {
		return fmt.Sprintf("%s: not enough data to compare %s with %s.", c.Factor, c.LeftLabel, c.RightLabel)
	}
	dir := "higher"
	if d < 0 {
		dir = "lower"
	}
	verdict := "not significant"
	if c.Significant {
		verdict = "significant"
	}
	return fmt.Sprintf("%s: %s students score %.1f points %s than %s (%s, threshold %.0f).",
		c.Factor, c.LeftLabel, Round1(math.Abs(d)), dir, c.RightLabel, verdict, c.Threshold)
}

// ReportSections lays out a full report.
func ReportSections(rep *analysis.Report) []Section {
	head := Section{Title: "REPORT", Header: []string{"Field", "Value"}}
	if rep.Name != "" {
		head.Rows = append(head.Rows, []string{"Dataset", rep.Name})
	}
	head.Rows = append(head.Rows, []string{"Students", strconv.Itoa(rep.Total)})
	for _, f := range rep.Filters {
		head.Rows = append(head.Rows, []string{"Filter", f})
	}
	out := []Section{head}
	out = append(out, OverviewSections(rep.Overview)...)
	for _, a := range rep.Aggregates {
		out = append(out, AggregateSection(a.Dimension, a.Field, a.Results))
	}
	for _, sp := range rep.Splits {
		out = append(out, SplitSection(sp.Dimension, sp.Split, sp.Field, sp.Results))
	}
	out = append(out, DistributionSection(student.DimBMICategory, student.FieldIntelligenceScore, rep.Distributions))
	if rep.Correlations != nil {
		out = append(out, MatrixSections(rep.Correlations)...)
	}
	for _, ct := range rep.CrossTabs {
		out = append(out, CrossTabSection(ct))
	}
	out = append(out, ProfileSection(student.DimBMICategory, rep.Profile))
	return append(out, InsightSections(rep.Insights)...)
}
