package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// DistributionResult holds box-plot statistics of one field within one group.
type DistributionResult struct {
	Key    GroupKey      `json:"key" yaml:"key"`
	Field  student.Field `json:"field" yaml:"field"`
	Count  int           `json:"count" yaml:"count"`
	Q1     Value         `json:"q1" yaml:"q1"`
	Median Value         `json:"median" yaml:"median"`
	Q3     Value         `json:"q3" yaml:"q3"`
	Min    Value         `json:"min" yaml:"min"`
	Max    Value         `json:"max" yaml:"max"`
	Mean   Value         `json:"mean" yaml:"mean"`
}

// HasData reports whether the group contributed any records.
func (d DistributionResult) HasData() bool { return d.Count > 0 }

// NearestRank returns sorted[floor(n*p)], zero-indexed.
//
// No interpolation between ranks: for [10 20 30 40] it gives q1=20,
// median=30, q3=40. sorted must be ascending and non-empty, and 0 <= p < 1.
func NearestRank(sorted []float64, p float64) float64 {
	i := int(math.Floor(float64(len(sorted)) * p))
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

// sortedStable returns xs in ascending order. Equal values keep their input
// order, so the result is deterministic for a given input.
func sortedStable(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(xs[a], xs[b]) })
	out := make([]float64, len(xs))
	for i, j := range idx {
		out[i] = xs[j]
	}
	return out
}

// Distribution computes nearest-rank quartiles, extremes and mean of f over
// g. A single record yields q1 = median = q3 = its value; an empty group
// yields Count 0 with every statistic absent.
func Distribution(g Group, f student.Field) (DistributionResult, error) {
	xs, err := student.Values(g.Records, f)
	if err != nil {
		return DistributionResult{}, err
	}
	res := DistributionResult{Key: g.Key, Field: f, Count: len(xs)}
	if len(xs) == 0 {
		return res, nil
	}
	sorted := sortedStable(xs)
	res.Q1 = Some(NearestRank(sorted, 0.25))
	res.Median = Some(NearestRank(sorted, 0.5))
	res.Q3 = Some(NearestRank(sorted, 0.75))
	res.Min = Some(sorted[0])
	res.Max = Some(sorted[len(sorted)-1])
	res.Mean = Some(stats.Mean(xs))
	return res, nil
}

type distOptions struct {
	parallel int
	group    []GroupOption
}

// DistributionOption tunes DistributionBy.
type DistributionOption func(*distOptions)

// Parallel computes up to n group distributions concurrently. Output order
// is unaffected.
func Parallel(n int) DistributionOption {
	return func(o *distOptions) { o.parallel = n }
}

// Padded keeps empty categories as no-data results.
func Padded() DistributionOption {
	return func(o *distOptions) { o.group = append(o.group, WithPadding()) }
}

// DistributionBy computes Distribution for every group of dim, in the
// dimension's category order.
func DistributionBy(records []student.Record, dim student.Dimension, f student.Field, opts ...DistributionOption) ([]DistributionResult, error) {
	var o distOptions
	for _, fn := range opts {
		fn(&o)
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, f)
	}
	groups, err := GroupBy(records, dim, o.group...)
	if err != nil {
		return nil, err
	}
	out := make([]DistributionResult, len(groups))
	if o.parallel <= 1 {
		for i, g := range groups {
			if out[i], err = Distribution(g, f); err != nil {
				return nil, fmt.Errorf("distribution %s: %w", g.Key, err)
			}
		}
		return out, nil
	}
	var eg errgroup.Group
	eg.SetLimit(o.parallel)
	for i, g := range groups {
		i, g := i, g // per-iteration copy (pre-Go 1.22 loop semantics)
		eg.Go(func() error {
			d, err := Distribution(g, f)
			if err != nil {
				return fmt.Errorf("distribution %s: %w", g.Key, err)
			}
			out[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
