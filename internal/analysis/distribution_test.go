package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

func scores(xs ...float64) []student.Record {
	out := make([]student.Record, len(xs))
	for i, x := range xs {
		out[i] = rec("r", student.Female, 12, 20, student.Normal, x, false)
	}
	return out
}

func TestDistributionNearestRank(t *testing.T) {
	d, err := Distribution(All(scores(30, 10, 40, 20)), student.FieldIntelligenceScore)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Count)
	assert.Equal(t, 20.0, d.Q1.Float())
	assert.Equal(t, 30.0, d.Median.Float())
	assert.Equal(t, 40.0, d.Q3.Float())
	assert.Equal(t, 10.0, d.Min.Float())
	assert.Equal(t, 40.0, d.Max.Float())
	assert.Equal(t, 25.0, d.Mean.Float())
}

func TestDistributionSingleAndEmpty(t *testing.T) {
	d, err := Distribution(All(scores(33)), student.FieldIntelligenceScore)
	require.NoError(t, err)
	for _, v := range []Value{d.Q1, d.Median, d.Q3, d.Min, d.Max, d.Mean} {
		assert.Equal(t, 33.0, v.Float())
	}

	d, err = Distribution(All(nil), student.FieldIntelligenceScore)
	require.NoError(t, err)
	assert.False(t, d.HasData())
	assert.False(t, d.Median.OK())
}

func TestNearestRankOddLength(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 2.0, NearestRank(sorted, 0.25))
	assert.Equal(t, 3.0, NearestRank(sorted, 0.5))
	assert.Equal(t, 4.0, NearestRank(sorted, 0.75))
}

func TestDistributionOrdering(t *testing.T) {
	for _, f := range student.Fields() {
		res, err := DistributionBy(cohort(), student.DimSex, f)
		require.NoError(t, err)
		for _, d := range res {
			assert.LessOrEqual(t, d.Min.Float(), d.Q1.Float(), "%s %s", f, d.Key)
			assert.LessOrEqual(t, d.Q1.Float(), d.Median.Float(), "%s %s", f, d.Key)
			assert.LessOrEqual(t, d.Median.Float(), d.Q3.Float(), "%s %s", f, d.Key)
			assert.LessOrEqual(t, d.Q3.Float(), d.Max.Float(), "%s %s", f, d.Key)
		}
	}
}

func TestDistributionParallelMatchesSequential(t *testing.T) {
	for _, d := range student.Dimensions() {
		seq, err := DistributionBy(cohort(), d, student.FieldBMI, Padded())
		require.NoError(t, err)
		par, err := DistributionBy(cohort(), d, student.FieldBMI, Padded(), Parallel(4))
		require.NoError(t, err)
		assert.Equal(t, seq, par, d.String())
	}
}

func TestDistributionByBMICategory(t *testing.T) {
	res, err := DistributionBy(cohort(), student.DimBMICategory, student.FieldIntelligenceScore)
	require.NoError(t, err)
	require.Len(t, res, 4)
	normal := res[1]
	assert.Equal(t, "normal", normal.Key.Label())
	// 40 45 48 50
	assert.Equal(t, 45.0, normal.Q1.Float())
	assert.Equal(t, 48.0, normal.Median.Float())
	assert.Equal(t, 50.0, normal.Q3.Float())

	_, err = DistributionBy(cohort(), student.DimBMICategory, student.Field(0))
	assert.ErrorIs(t, err, ErrUnknownField)
}
