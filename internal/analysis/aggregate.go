package analysis

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// AggregateResult summarizes one numeric field within one group. Values are
// left at full precision; rounding belongs to the renderer.
type AggregateResult struct {
	Key        GroupKey      `json:"key" yaml:"key"`
	Field      student.Field `json:"field" yaml:"field"`
	Count      int           `json:"count" yaml:"count"`
	Mean       Value         `json:"mean" yaml:"mean"`
	Min        Value         `json:"min" yaml:"min"`
	Max        Value         `json:"max" yaml:"max"`
	StdDev     Value         `json:"std_dev" yaml:"std_dev"`
	Percentage Value         `json:"percentage_of_total" yaml:"percentage_of_total"`
}

// HasData reports whether the group contributed any records.
func (a AggregateResult) HasData() bool { return a.Count > 0 }

// Aggregate computes count, mean, min, max and sample standard deviation of f
// over g. total is the size of the ungrouped collection and is only used for
// the percentage; pass 0 when no percentage is wanted.
//
// An empty group yields Count 0 with every statistic absent.
func Aggregate(g Group, f student.Field, total int) (AggregateResult, error) {
	xs, err := student.Values(g.Records, f)
	if err != nil {
		return AggregateResult{}, err
	}
	res := AggregateResult{Key: g.Key, Field: f, Count: len(xs)}
	if total > 0 {
		res.Percentage = Some(float64(len(xs)) * 100 / float64(total))
	}
	if len(xs) == 0 {
		return res, nil
	}
	s := stats.Sample{Xs: xs}
	lo, hi := s.Bounds()
	res.Mean = Some(s.Mean())
	res.Min = Some(lo)
	res.Max = Some(hi)
	if len(xs) > 1 {
		res.StdDev = Some(s.StdDev())
	}
	return res, nil
}

// AggregateBy groups records along dim and aggregates f in every non-empty
// group, using the full collection as the percentage denominator.
func AggregateBy(records []student.Record, dim student.Dimension, f student.Field, opts ...GroupOption) ([]AggregateResult, error) {
	groups, err := GroupBy(records, dim, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]AggregateResult, 0, len(groups))
	for _, g := range groups {
		a, err := Aggregate(g, f, len(records))
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", g.Key, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// SplitResult aggregates f over one category of the primary dimension and,
// in Split, over each category of the secondary dimension inside it, e.g.
// mean score at age 12 for boys and for girls. Split is padded so every
// row lists the same secondary categories; Split percentages are shares of
// the primary group.
type SplitResult struct {
	AggregateResult `yaml:",inline"`
	Split           []AggregateResult `json:"split" yaml:"split"`
}

// AggregateSplit groups records along dim, then splits each non-empty group
// along split and aggregates f at both levels.
func AggregateSplit(records []student.Record, dim, split student.Dimension, f student.Field) ([]SplitResult, error) {
	if dim == split {
		return nil, fmt.Errorf("split %s by itself", dim)
	}
	groups, err := GroupByMany(records, []student.Dimension{dim, split}, WithPadding())
	if err != nil {
		return nil, err
	}
	out := make([]SplitResult, 0, len(groups))
	for _, g := range groups {
		if g.Len() == 0 {
			continue
		}
		top, err := Aggregate(g, f, len(records))
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", g.Key, err)
		}
		res := SplitResult{AggregateResult: top, Split: make([]AggregateResult, 0, len(g.SubGroups))}
		for _, sub := range g.SubGroups {
			a, err := Aggregate(sub, f, g.Len())
			if err != nil {
				return nil, fmt.Errorf("aggregate %s/%s: %w", g.Key, sub.Key, err)
			}
			res.Split = append(res.Split, a)
		}
		out = append(out, res)
	}
	return out, nil
}

// Extremes returns the results with the highest and lowest mean. Results
// without data are ignored; ties keep the earliest result. ok is false when
// no result has a mean.
func Extremes(results []AggregateResult) (best, worst AggregateResult, ok bool) {
	for _, r := range results {
		m, has := r.Mean.Get()
		if !has {
			continue
		}
		if !ok {
			best, worst, ok = r, r, true
			continue
		}
		if m > best.Mean.Float() {
			best = r
		}
		if m < worst.Mean.Float() {
			worst = r
		}
	}
	return best, worst, ok
}

// Share is a category count with its percentage of the collection.
type Share struct {
	Key        GroupKey `json:"key" yaml:"key"`
	Count      int      `json:"count" yaml:"count"`
	Percentage Value    `json:"percentage" yaml:"percentage"`
}

// Counts returns how many records fall in each category of dim. With
// WithPadding every category is listed, including empty ones.
func Counts(records []student.Record, dim student.Dimension, opts ...GroupOption) ([]Share, error) {
	groups, err := GroupBy(records, dim, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]Share, len(groups))
	for i, g := range groups {
		out[i] = Share{Key: g.Key, Count: g.Len()}
		if len(records) > 0 {
			out[i].Percentage = Some(float64(g.Len()) * 100 / float64(len(records)))
		}
	}
	return out, nil
}
