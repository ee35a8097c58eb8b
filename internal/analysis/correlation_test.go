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

func TestPearsonValues(t *testing.T) {
	c, err := PearsonValues([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, c.Defined)
	assert.InDelta(t, 1.0, c.R, 1e-12)

	c, err = PearsonValues([]float64{1, 2, 3}, []float64{3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.R, 1e-12)

	c, err = PearsonValues([]float64{5, 5, 5}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrZeroVariance))
	assert.False(t, c.Defined)

	_, err = PearsonValues(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = PearsonValues([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestPearsonValuesNonFinite(t *testing.T) {
	for _, xs := range [][]float64{
		{1, math.NaN(), 3},
		{1, math.Inf(1), 3},
		{math.Inf(-1), 2, 3},
	} {
		c, err := PearsonValues(xs, []float64{1, 2, 3})
		assert.True(t, errors.Is(err, ErrNonFinite), "%v", xs)
		assert.False(t, c.Defined, "%v", xs)
	}

	// finite samples whose spread overflows float64
	c, err := PearsonValues([]float64{math.MaxFloat64, -math.MaxFloat64, 0}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrNonFinite))
	assert.False(t, c.Defined)
}

func TestPearsonValuesLargeMagnitudes(t *testing.T) {
	c, err := PearsonValues([]float64{1e200, 2e200, 3e200}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, c.Defined)
	assert.InDelta(t, 1.0, c.R, 1e-12)

	c, err = PearsonValues([]float64{1e-200, 2e-200, 3e-200}, []float64{3e150, 2e150, 1e150})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.R, 1e-12)
}

func TestPearsonSymmetric(t *testing.T) {
	records := cohort()
	fields := student.Fields()
	for _, a := range fields {
		for _, b := range fields {
			ab, errAB := Pearson(records, a, b)
			ba, errBA := Pearson(records, b, a)
			assert.Equal(t, errAB == nil, errBA == nil)
			assert.Equal(t, ab, ba, "%s ~ %s", a, b)
		}
		// every field varies across the cohort, so self-correlation is exactly 1
		self, err := Pearson(records, a, a)
		require.NoError(t, err, "%s", a)
		assert.True(t, self.Defined)
		assert.InDelta(t, 1.0, self.R, 1e-12, "%s ~ %s", a, a)
	}
}

func TestPearsonZeroVarianceNamesFields(t *testing.T) {
	records := scores(10, 20, 30)
	_, err := Pearson(records, student.FieldBMI, student.FieldIntelligenceScore)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroVariance))
	assert.Contains(t, err.Error(), "bmi")
}

func TestCorrelationMatrix(t *testing.T) {
	m, err := CorrelationMatrix(cohort(), student.Fields())
	require.NoError(t, err)
	n := len(m.Fields)
	require.Equal(t, 4, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, m.At(i, i).R)
		assert.True(t, m.At(i, i).Defined)
		for j := 0; j < n; j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			if m.At(i, j).Defined {
				assert.LessOrEqual(t, m.At(i, j).R, 1.0)
				assert.GreaterOrEqual(t, m.At(i, j).R, -1.0)
			}
		}
	}
}

func TestCorrelationMatrixUndefinedCell(t *testing.T) {
	// everyone plays sport: the sport column is constant
	records := cohort()
	for i := range records {
		records[i].PlaysSport = true
	}
	fields := []student.Field{student.FieldBMI, student.FieldIntelligenceScore, student.FieldSport}
	m, err := CorrelationMatrix(records, fields)
	require.NoError(t, err)
	assert.True(t, m.At(0, 1).Defined)
	assert.False(t, m.At(0, 2).Defined)
	assert.True(t, errors.Is(m.At(2, 1).Err, ErrZeroVariance))
	assert.Equal(t, 1.0, m.At(2, 2).R, "diagonal is 1 even for a constant field")

	b, err := json.Marshal(m)
	require.NoError(t, err)
	var decoded struct {
		Fields []string     `json:"fields"`
		Values [][]*float64 `json:"values"`
		Errors []string     `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []string{"bmi", "intelligence_score", "sport"}, decoded.Fields)
	assert.Nil(t, decoded.Values[0][2])
	assert.NotNil(t, decoded.Values[0][1])
	assert.Len(t, decoded.Errors, 2)

	pairs := m.Pairs()
	require.Len(t, pairs, 3)
	assert.True(t, pairs[0].R.Defined)
	assert.False(t, pairs[1].R.Defined)
	assert.False(t, pairs[2].R.Defined)
}

func TestCorrelationMatrixUnknownField(t *testing.T) {
	_, err := CorrelationMatrix(cohort(), []student.Field{student.FieldBMI, student.Field(7)})
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		r   float64
		s   Strength
		dir Direction
	}{
		{0, Negligible, Positive},
		{0.29, Negligible, Positive},
		{-0.3, Weak, Negative},
		{0.49, Weak, Positive},
		{0.5, Moderate, Positive},
		{-0.69, Moderate, Negative},
		{0.7, Strong, Positive},
		{-1, Strong, Negative},
	}
	for _, c := range cases {
		s, d := Classify(c.r)
		assert.Equal(t, c.s, s, "r=%v", c.r)
		assert.Equal(t, c.dir, d, "r=%v", c.r)
	}
	assert.Equal(t, "moderate", Moderate.String())
	assert.Equal(t, "negative", Negative.String())
}
