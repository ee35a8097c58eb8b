package analysis

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

func TestAggregateExample(t *testing.T) {
	records := []student.Record{
		rec("a", student.Male, 12, 20, student.Normal, 40, false),
		rec("b", student.Female, 12, 21, student.Normal, 50, true),
		rec("c", student.Male, 13, 34, student.Obese, 20, false),
	}
	res, err := AggregateBy(records, student.DimBMICategory, student.FieldIntelligenceScore)
	require.NoError(t, err)
	require.Len(t, res, 2)

	normal := res[0]
	assert.Equal(t, "normal", normal.Key.Label())
	assert.Equal(t, 2, normal.Count)
	assert.Equal(t, 45.0, normal.Mean.Float())
	assert.Equal(t, 40.0, normal.Min.Float())
	assert.Equal(t, 50.0, normal.Max.Float())
	assert.InDelta(t, 66.667, normal.Percentage.Float(), 0.001)
	assert.InDelta(t, math.Sqrt(50), normal.StdDev.Float(), 1e-9)

	obese := res[1]
	assert.Equal(t, 1, obese.Count)
	assert.Equal(t, 20.0, obese.Mean.Float())
	assert.Equal(t, 20.0, obese.Min.Float())
	assert.Equal(t, 20.0, obese.Max.Float())
	assert.False(t, obese.StdDev.OK(), "single record has no sample deviation")
}

func TestAggregatePercentagesSumTo100(t *testing.T) {
	for _, d := range student.Dimensions() {
		res, err := AggregateBy(cohort(), d, student.FieldBMI)
		require.NoError(t, err)
		var sum float64
		for _, r := range res {
			sum += r.Percentage.Float()
			assert.LessOrEqual(t, r.Min.Float(), r.Mean.Float())
			assert.LessOrEqual(t, r.Mean.Float(), r.Max.Float())
		}
		assert.InDelta(t, 100, sum, 1e-9, d.String())
	}
}

func TestAggregateEmptyGroupHasNoData(t *testing.T) {
	records := []student.Record{rec("a", student.Male, 12, 20, student.Normal, 40, false)}
	res, err := AggregateBy(records, student.DimBMICategory, student.FieldIntelligenceScore, WithPadding())
	require.NoError(t, err)
	require.Len(t, res, 4)
	obese := res[3]
	assert.False(t, obese.HasData())
	assert.False(t, obese.Mean.OK())
	assert.False(t, obese.Min.OK())
	assert.Equal(t, 0.0, obese.Percentage.Float(), "empty category is 0% of a non-empty collection")

	whole, err := Aggregate(All(nil), student.FieldIntelligenceScore, 0)
	require.NoError(t, err)
	assert.Zero(t, whole.Count)
	assert.False(t, whole.Mean.OK())
	assert.False(t, whole.Percentage.OK())
}

func TestAggregateUnknownField(t *testing.T) {
	_, err := AggregateBy(cohort(), student.DimSex, student.Field(99))
	assert.True(t, errors.Is(err, ErrUnknownField))
	_, err = AggregateBy(cohort(), student.Dimension(99), student.FieldBMI)
	assert.True(t, errors.Is(err, ErrUnknownDimension))
}

func TestAggregateSportIsShare(t *testing.T) {
	res, err := AggregateBy(cohort(), student.DimSex, student.FieldSport)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.InDelta(t, 0.4, res[0].Mean.Float(), 1e-9, "male")
	assert.InDelta(t, 0.6, res[1].Mean.Float(), 1e-9, "female")
}

func TestExtremes(t *testing.T) {
	res, err := AggregateBy(cohort(), student.DimBMICategory, student.FieldIntelligenceScore, WithPadding())
	require.NoError(t, err)
	best, worst, ok := Extremes(res)
	require.True(t, ok)
	assert.Equal(t, "normal", best.Key.Label())
	assert.Equal(t, "obese", worst.Key.Label())

	_, _, ok = Extremes([]AggregateResult{{Count: 0}})
	assert.False(t, ok)
}

func TestCountsPadded(t *testing.T) {
	shares, err := Counts(cohort(), student.DimIntelligenceLevel, WithPadding())
	require.NoError(t, err)
	require.Len(t, shares, 4)
	var n int
	for _, s := range shares {
		n += s.Count
	}
	assert.Equal(t, 10, n)
	assert.Equal(t, 0, shares[0].Count, "no low scores in cohort")
	assert.Equal(t, 0.0, shares[0].Percentage.Float())
}

func TestValueEncoding(t *testing.T) {
	b, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
	}{A: Some(0), B: Value{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0,"b":null}`, string(b))

	var v Value
	require.NoError(t, json.Unmarshal([]byte("12.5"), &v))
	assert.Equal(t, 12.5, v.Or(-1))
	require.NoError(t, json.Unmarshal([]byte("null"), &v))
	assert.False(t, v.OK())
	assert.True(t, math.IsNaN(v.Float()))
}

func TestAggregateSplitByAgeAndSex(t *testing.T) {
	res, err := AggregateSplit(cohort(), student.DimAge, student.DimSex, student.FieldIntelligenceScore)
	require.NoError(t, err)
	require.Len(t, res, 5)

	age12 := res[1]
	assert.Equal(t, "12", age12.Key.Label())
	assert.Equal(t, 2, age12.Count)
	assert.Equal(t, 45.0, age12.Mean.Float())
	assert.Equal(t, 20.0, age12.Percentage.Float())
	require.Len(t, age12.Split, 2)
	assert.Equal(t, "male", age12.Split[0].Key.Label())
	assert.Equal(t, 40.0, age12.Split[0].Mean.Float())
	assert.Equal(t, "female", age12.Split[1].Key.Label())
	assert.Equal(t, 50.0, age12.Split[1].Mean.Float())
	assert.Equal(t, 50.0, age12.Split[1].Percentage.Float(), "share of the age group")

	for _, r := range res {
		n := 0
		for _, sub := range r.Split {
			n += sub.Count
		}
		assert.Equal(t, r.Count, n, "%s", r.Key)
	}
}

func TestAggregateSplitByBMICategoryAndSex(t *testing.T) {
	res, err := AggregateSplit(cohort(), student.DimBMICategory, student.DimSex, student.FieldIntelligenceScore)
	require.NoError(t, err)
	require.Len(t, res, 4)
	normal := res[1]
	assert.Equal(t, "normal", normal.Key.Label())
	assert.Equal(t, 45.75, normal.Mean.Float())
	assert.Equal(t, 42.5, normal.Split[0].Mean.Float())
	assert.Equal(t, 49.0, normal.Split[1].Mean.Float())
}

func TestAggregateSplitPadsSecondaryOnly(t *testing.T) {
	female := student.Female
	girls := student.Filter{Sex: &female}.Apply(cohort())
	res, err := AggregateSplit(girls, student.DimBMICategory, student.DimSex, student.FieldBMI)
	require.NoError(t, err)
	require.Len(t, res, 4)
	for _, r := range res {
		require.Len(t, r.Split, 2)
		assert.Zero(t, r.Split[0].Count)
		assert.False(t, r.Split[0].Mean.OK(), "no boys means no data, not zero")
		assert.Equal(t, r.Count, r.Split[1].Count)
	}

	_, err = AggregateSplit(girls, student.DimSex, student.DimSex, student.FieldBMI)
	assert.Error(t, err)
	_, err = AggregateSplit(girls, student.DimSex, student.Dimension(99), student.FieldBMI)
	assert.True(t, errors.Is(err, ErrUnknownDimension))
}
