package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// Coefficient is a Pearson r. When Defined is false the coefficient does not
// exist (no data, or a constant input) and R must not be read.
type Coefficient struct {
	R       float64
	Defined bool
}

func (c Coefficient) MarshalJSON() ([]byte, error) {
	if !c.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(c.R)
}

func (c Coefficient) MarshalYAML() (interface{}, error) {
	if !c.Defined {
		return nil, nil
	}
	return c.R, nil
}

// Strength buckets |r| by fixed policy thresholds.
type Strength uint8

const (
	Negligible Strength = iota
	Weak
	Moderate
	Strong
)

// Policy thresholds on |r|. These are reporting conventions, not derived.
const (
	WeakThreshold     = 0.3
	ModerateThreshold = 0.5
	StrongThreshold   = 0.7
)

var strengthNames = [...]string{Negligible: "negligible", Weak: "weak", Moderate: "moderate", Strong: "strong"}

func (s Strength) String() string {
	if int(s) < len(strengthNames) {
		return strengthNames[s]
	}
	return fmt.Sprintf("strength(%d)", s)
}

func (s Strength) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Direction is the sign of a coefficient.
type Direction uint8

const (
	Positive Direction = iota
	Negative
)

func (d Direction) String() string {
	if d == Negative {
		return "negative"
	}
	return "positive"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Classify maps r onto its strength bucket and direction. r == 0 counts as
// positive.
func Classify(r float64) (Strength, Direction) {
	dir := Positive
	if r < 0 {
		dir = Negative
	}
	a := math.Abs(r)
	switch {
	case a >= StrongThreshold:
		return Strong, dir
	case a >= ModerateThreshold:
		return Moderate, dir
	case a >= WeakThreshold:
		return Weak, dir
	}
	return Negligible, dir
}

// Classify is Classify(c.R). Callers check Defined first.
func (c Coefficient) Classify() (Strength, Direction) { return Classify(c.R) }

// PearsonValues computes Σ(a−ā)(b−b̄) / sqrt(Σ(a−ā)² · Σ(b−b̄)²).
//
// Errors: ErrEmptyInput for no pairs, ErrLengthMismatch, ErrNonFinite when a
// sample is NaN or ±Inf or the result overflows, and ErrZeroVariance when
// either side is constant. In every error case the returned Coefficient is
// undefined.
func PearsonValues(a, b []float64) (Coefficient, error) {
	if len(a) != len(b) {
		return Coefficient{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return Coefficient{}, ErrEmptyInput
	}
	for i := range a {
		if !finite(a[i]) || !finite(b[i]) {
			return Coefficient{}, fmt.Errorf("%w: pair %d", ErrNonFinite, i)
		}
	}
	if constant(a) || constant(b) {
		return Coefficient{}, ErrZeroVariance
	}
	da, db := deviations(a), deviations(b)
	var num, da2, db2 float64
	for i := range da {
		num += da[i] * db[i]
		da2 += da[i] * da[i]
		db2 += db[i] * db[i]
	}
	denom := math.Sqrt(da2) * math.Sqrt(db2)
	if denom == 0 {
		return Coefficient{}, ErrZeroVariance
	}
	r := num / denom
	if !finite(r) {
		return Coefficient{}, ErrNonFinite
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return Coefficient{R: r, Defined: true}, nil
}

// deviations returns xs minus its mean, divided by the largest absolute
// deviation. r is scale-invariant per side, and the scaling keeps the sums
// of squares finite for inputs near the float64 range.
func deviations(xs []float64) []float64 {
	m := stats.Mean(xs)
	out := make([]float64, len(xs))
	var peak float64
	for i, x := range xs {
		out[i] = x - m
		peak = math.Max(peak, math.Abs(out[i]))
	}
	if peak > 0 && finite(peak) {
		for i := range out {
			out[i] /= peak
		}
	}
	return out
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// constant is checked directly rather than via a zero sum of squares, since
// rounding in the mean can leave tiny residuals for identical values.
func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Pearson correlates two fields across records. Boolean fields go through
// student.SportNumeric first.
func Pearson(records []student.Record, fa, fb student.Field) (Coefficient, error) {
	a, err := student.Values(records, fa)
	if err != nil {
		return Coefficient{}, err
	}
	b, err := student.Values(records, fb)
	if err != nil {
		return Coefficient{}, err
	}
	c, err := PearsonValues(a, b)
	if err != nil {
		return c, fmt.Errorf("%s ~ %s: %w", fa, fb, err)
	}
	return c, nil
}

// Cell is one entry of a correlation matrix. Err is set when the
// coefficient is undefined; it never affects other cells.
type Cell struct {
	Coefficient
	Err error
}

// Matrix is a symmetric Pearson matrix over Fields, Cells[i][j] row-major.
type Matrix struct {
	Fields []student.Field
	Cells  [][]Cell
}

// At returns the cell for fields i and j.
func (m *Matrix) At(i, j int) Cell { return m.Cells[i][j] }

// CorrelationMatrix correlates every pair of fields. The diagonal is exactly
// 1 and each off-diagonal value is computed once and mirrored, so
// Cells[i][j] == Cells[j][i]. An unknown field fails the whole call; an
// undefined pair only marks its own cell.
func CorrelationMatrix(records []student.Record, fields []student.Field) (*Matrix, error) {
	cols := make([][]float64, len(fields))
	for i, f := range fields {
		xs, err := student.Values(records, f)
		if err != nil {
			return nil, err
		}
		cols[i] = xs
	}
	n := len(fields)
	m := &Matrix{Fields: append([]student.Field(nil), fields...), Cells: make([][]Cell, n)}
	for i := range m.Cells {
		m.Cells[i] = make([]Cell, n)
	}
	for i := 0; i < n; i++ {
		m.Cells[i][i] = Cell{Coefficient: Coefficient{R: 1, Defined: true}}
		for j := i + 1; j < n; j++ {
			c, err := PearsonValues(cols[i], cols[j])
			if err != nil {
				err = fmt.Errorf("%s ~ %s: %w", fields[i], fields[j], err)
			}
			m.Cells[i][j] = Cell{Coefficient: c, Err: err}
			m.Cells[j][i] = m.Cells[i][j]
		}
	}
	return m, nil
}

// Pair is one off-diagonal entry of a matrix.
type Pair struct {
	A, B student.Field
	R    Coefficient
	Err  error
}

// Pairs lists the upper triangle, defined coefficients first by descending
// |r|, then undefined ones in matrix order.
func (m *Matrix) Pairs() []Pair {
	var pairs []Pair
	for i := range m.Fields {
		for j := i + 1; j < len(m.Fields); j++ {
			c := m.Cells[i][j]
			pairs = append(pairs, Pair{A: m.Fields[i], B: m.Fields[j], R: c.Coefficient, Err: c.Err})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		pi, pj := pairs[i], pairs[j]
		if pi.R.Defined != pj.R.Defined {
			return pi.R.Defined
		}
		if !pi.R.Defined {
			return false
		}
		return math.Abs(pi.R.R) > math.Abs(pj.R.R)
	})
	return pairs
}

type matrixJSON struct {
	Fields []student.Field `json:"fields" yaml:"fields"`
	Values [][]Coefficient `json:"values" yaml:"values"`
	Errors []string        `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (m *Matrix) encoded() matrixJSON {
	out := matrixJSON{Fields: m.Fields, Values: make([][]Coefficient, len(m.Cells))}
	for i, row := range m.Cells {
		out.Values[i] = make([]Coefficient, len(row))
		for j, c := range row {
			out.Values[i][j] = c.Coefficient
			if j > i && c.Err != nil {
				out.Errors = append(out.Errors, c.Err.Error())
			}
		}
	}
	return out
}

func (m *Matrix) MarshalJSON() ([]byte, error) { return json.Marshal(m.encoded()) }

func (m *Matrix) MarshalYAML() (interface{}, error) { return m.encoded(), nil }
