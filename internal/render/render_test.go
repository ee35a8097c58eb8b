package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
	"github.com/KaramelBytes/cohort-cli/internal/student"
)

func records() []student.Record {
	mk := func(id string, sex student.Sex, bmi float64, cat student.BMICategory, score float64, sport bool) student.Record {
		return student.Record{ID: id, Age: 12, Sex: sex, Class: student.Sixth, BMI: bmi, BMICategory: cat,
			IntelligenceScore: score, IntelligenceLevel: student.Medium, PlaysSport: sport}
	}
	return []student.Record{
		mk("a", student.Female, 20, student.Normal, 42, true),
		mk("b", student.Male, 21, student.Normal, 42, false),
		mk("c", student.Female, 31, student.Obese, 35, true),
		mk("d", student.Male, 17, student.Underweight, 35, false),
	}
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, 45.8, Round1(45.75))
	assert.Equal(t, -2.5, Round1(-2.45))
	assert.Equal(t, "45.8", Num(analysis.Some(45.75)))
	assert.Equal(t, NoData, Num(analysis.Value{}))
	assert.Equal(t, "66.7%", Pct(analysis.Some(200.0/3)))
	assert.Equal(t, NoData, Pct(analysis.Value{}))
	assert.Equal(t, "+7.0", Signed(analysis.Some(7)))
	assert.Equal(t, "-0.6", Signed(analysis.Some(-0.6)))
	assert.Equal(t, "undefined", Coef(analysis.Coefficient{}))
	assert.Equal(t, "-0.420", Coef(analysis.Coefficient{R: -0.42, Defined: true}))
	assert.Equal(t, "weak negative", Strength(analysis.Coefficient{R: -0.42, Defined: true}))
	assert.Equal(t, "negligible", Strength(analysis.Coefficient{R: 0.1, Defined: true}))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Table, "MD": Markdown, "json": JSON, "yml": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func TestMarkdownString(t *testing.T) {
	md := MarkdownString([]Section{
		{Title: "A", Header: []string{"x", "y"}, Rows: [][]string{{"1", "a|b"}}, Notes: []string{"note"}},
		{Title: "EMPTY", Header: []string{"x"}},
	})
	want := "[A]\n| x | y |\n| --- | --- |\n| 1 | a/b |\n- note\n\n[EMPTY]\n(no data)\n"
	assert.Equal(t, want, md)
}

func TestWriteTable(t *testing.T) {
	res, err := analysis.AggregateBy(records(), student.DimBMICategory, student.FieldIntelligenceScore, analysis.WithPadding())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Table, res, AggregateSection(student.DimBMICategory, student.FieldIntelligenceScore, res)))
	out := buf.String()
	assert.Contains(t, out, "INTELLIGENCE SCORE BY BMI CATEGORY")
	assert.Contains(t, out, "overweight")
	assert.Contains(t, out, NoData)
	assert.Contains(t, out, "50.0%")
}

func TestWriteJSONKeepsPrecision(t *testing.T) {
	res, err := analysis.AggregateBy(records(), student.DimSex, student.FieldBMI, analysis.WithPadding())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, res))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 19.0, decoded[0]["mean"])
	assert.Equal(t, "female", decoded[1]["key"].(map[string]any)["category"])
}

func TestWriteYAMLNoData(t *testing.T) {
	d, err := analysis.Distribution(analysis.All(nil), student.FieldBMI)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, d))
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Nil(t, decoded["median"])
	assert.Equal(t, 0, decoded["count"])
}

func TestReportSections(t *testing.T) {
	rep, err := analysis.BuildReport(records(), analysis.ReportOptions{Name: "cohort.json", Filters: []string{"age=12"}})
	require.NoError(t, err)
	md := MarkdownString(ReportSections(rep))
	for _, title := range []string{"[REPORT]", "[OVERVIEW]", "[CORRELATIONS]", "[INSIGHTS]", "[SCORE BY AGE]", "[PROFILE BY BMI CATEGORY]",
		"[INTELLIGENCE SCORE BY AGE AND SEX]", "[BMI BY AGE AND SEX]", "[INTELLIGENCE SCORE BY BMI CATEGORY AND SEX]"} {
		assert.Contains(t, md, title)
	}
	assert.Contains(t, md, "| Filter | age=12 |")
	assert.Contains(t, md, "| Category | Count | Mean | Mean male | n male | Mean female | n female |")
	assert.Contains(t, md, "| 12 | 4 | 38.5 | 38.5 | 2 | 38.5 | 2 |")
	assert.Contains(t, md, "bmi: normal students score 7.0 points higher than extreme (significant, threshold 5).")
	assert.Contains(t, md, "sex: female students score 0.0 points higher than male (not significant, threshold 3).")
	// age is constant in this collection
	assert.True(t, strings.Contains(md, "zero variance"))
}
