package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

func TestCrossTabulate(t *testing.T) {
	ct, err := CrossTabulate(cohort(), student.DimBMICategory, student.DimSport)
	require.NoError(t, err)
	require.Len(t, ct.Columns, 2)
	require.Len(t, ct.Lines, 4)

	normal := ct.Lines[1]
	assert.Equal(t, "normal", normal.Key.Label())
	assert.Equal(t, 4, normal.Total)
	require.Len(t, normal.Cells, 2)
	assert.Equal(t, 3, normal.Cells[0].Count)
	assert.Equal(t, 75.0, normal.Cells[0].Share.Float())
	assert.Equal(t, 25.0, normal.Cells[1].Share.Float())

	for _, line := range ct.Lines {
		var n int
		var share float64
		for _, c := range line.Cells {
			n += c.Count
			share += c.Share.Float()
		}
		assert.Equal(t, line.Total, n)
		assert.InDelta(t, 100, share, 1e-9)
	}
}

func TestCrossTabulateSkipsEmptyRowsKeepsColumns(t *testing.T) {
	records := []student.Record{rec("a", student.Male, 12, 20, student.Normal, 41, true)}
	ct, err := CrossTabulate(records, student.DimBMICategory, student.DimIntelligenceLevel)
	require.NoError(t, err)
	require.Len(t, ct.Lines, 1)
	assert.Len(t, ct.Lines[0].Cells, 4)

	_, err = CrossTabulate(records, student.DimSex, student.DimSex)
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	rows, err := Profile(cohort(), student.DimBMICategory)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	normal := rows[1]
	assert.Equal(t, 4, normal.Count)
	assert.InDelta(t, 76.25, normal.Score.Float(), 1e-9)
	assert.InDelta(t, 27.5, normal.BMI.Float(), 1e-9)
	assert.InDelta(t, 50.0, normal.Age.Float(), 1e-9)
	assert.InDelta(t, 75.0, normal.Sport.Float(), 1e-9)
}

func TestOverview(t *testing.T) {
	ov, err := Overview(cohort())
	require.NoError(t, err)
	assert.Equal(t, 10, ov.Total)
	assert.InDelta(t, 37.9, ov.MeanScore.Float(), 1e-9)
	assert.InDelta(t, 23.15, ov.MeanBMI.Float(), 1e-9)
	assert.InDelta(t, 50.0, ov.SportShare.Float(), 1e-9)

	counts := make([]int, len(ov.BMICategories))
	for i, s := range ov.BMICategories {
		counts[i] = s.Count
	}
	assert.Equal(t, []int{2, 4, 2, 2}, counts)
	assert.Len(t, ov.IntelligenceLevels, 4)
	assert.Len(t, ov.Sexes, 2)
	assert.True(t, ov.Correlation.Defined)

	empty, err := Overview(nil)
	require.NoError(t, err)
	assert.False(t, empty.MeanScore.OK())
	assert.False(t, empty.Correlation.Defined)
	assert.Len(t, empty.BMICategories, 4)
}

func TestBuildReport(t *testing.T) {
	rep, err := BuildReport(cohort(), ReportOptions{Name: "cohort.json", Filters: []string{"sex=female"}})
	require.NoError(t, err)
	assert.Equal(t, 10, rep.Total)
	assert.Len(t, rep.Aggregates, len(DefaultAggregates))
	assert.Len(t, rep.CrossTabs, len(DefaultCrossTabs))
	require.Len(t, rep.Splits, len(DefaultSplits))
	for i, sp := range rep.Splits {
		assert.Equal(t, DefaultSplits[i].Split, sp.Split)
		assert.NotEmpty(t, sp.Results)
	}
	assert.Equal(t, student.DimAge, rep.Splits[0].Dimension)
	assert.Equal(t, 50.0, rep.Splits[0].Results[1].Split[1].Mean.Float(), "girls aged 12")
	assert.Len(t, rep.Distributions, 4)
	require.NotNil(t, rep.Correlations)
	assert.Len(t, rep.Correlations.Fields, 4)
	assert.Equal(t, FactorBMI, rep.Insights.GreatestImpact)
	for i, a := range rep.Aggregates {
		assert.Equal(t, DefaultAggregates[i].Dimension, a.Dimension)
		assert.NotEmpty(t, a.Results)
	}
}

func TestBuildReportParallelMatchesSequential(t *testing.T) {
	seq, err := BuildReport(cohort(), ReportOptions{})
	require.NoError(t, err)
	par, err := BuildReport(cohort(), ReportOptions{Parallel: 8})
	require.NoError(t, err)
	a, err := json.Marshal(seq)
	require.NoError(t, err)
	b, err := json.Marshal(par)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestBuildReportEmpty(t *testing.T) {
	rep, err := BuildReport(nil, ReportOptions{})
	require.NoError(t, err)
	assert.Zero(t, rep.Total)
	assert.Empty(t, rep.Distributions)
	assert.False(t, rep.Correlations.At(0, 1).Defined)

	_, err = json.Marshal(rep)
	assert.NoError(t, err)
}
