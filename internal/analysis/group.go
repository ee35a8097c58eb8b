package analysis

import (
	"fmt"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// GroupKey identifies a partition: one category of one dimension. The zero
// key stands for the whole, ungrouped collection.
type GroupKey struct {
	Dimension student.Dimension `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Category  student.Category  `json:"category,omitempty" yaml:"category,omitempty"`
}

// IsZero reports whether k is the ungrouped key.
func (k GroupKey) IsZero() bool { return k.Dimension == 0 }

// Label is the category label, or "all" for the ungrouped key.
func (k GroupKey) Label() string {
	if k.IsZero() {
		return "all"
	}
	return k.Category.String()
}

func (k GroupKey) String() string {
	if k.IsZero() {
		return "all"
	}
	return fmt.Sprintf("%s=%s", k.Dimension, k.Category)
}

// Group is a subset of records sharing one category. SubGroups is populated
// by GroupByMany.
type Group struct {
	Key       GroupKey
	Records   []student.Record
	SubGroups []Group
}

// Len is the number of records in the group.
func (g Group) Len() int { return len(g.Records) }

// All wraps an entire collection as a single ungrouped Group.
func All(records []student.Record) Group { return Group{Records: records} }

type groupOptions struct {
	pad bool
}

// GroupOption tunes GroupBy.
type GroupOption func(*groupOptions)

// WithPadding keeps categories that have no records, as empty groups.
func WithPadding() GroupOption {
	return func(o *groupOptions) { o.pad = true }
}

// GroupBy partitions records along dim. Groups follow the dimension's fixed
// category order, not discovery order, and empty categories are dropped
// unless WithPadding is given. Records keep their input order inside each
// group.
func GroupBy(records []student.Record, dim student.Dimension, opts ...GroupOption) ([]Group, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDimension, dim)
	}
	var o groupOptions
	for _, fn := range opts {
		fn(&o)
	}
	cats := dim.Categories()
	buckets := make([][]student.Record, len(cats))
	for _, r := range records {
		c, err := r.Category(dim)
		if err != nil {
			return nil, err
		}
		buckets[c.Index()] = append(buckets[c.Index()], r)
	}
	groups := make([]Group, 0, len(cats))
	for i, c := range cats {
		if len(buckets[i]) == 0 && !o.pad {
			continue
		}
		groups = append(groups, Group{
			Key:     GroupKey{Dimension: dim, Category: c},
			Records: buckets[i],
		})
	}
	return groups, nil
}

// GroupByMany partitions along dims[0] and nests each group's records along
// the remaining dimensions in turn.
func GroupByMany(records []student.Record, dims []student.Dimension, opts ...GroupOption) ([]Group, error) {
	if len(dims) == 0 {
		return []Group{All(records)}, nil
	}
	groups, err := GroupBy(records, dims[0], opts...)
	if err != nil {
		return nil, err
	}
	if len(dims) == 1 {
		return groups, nil
	}
	for i := range groups {
		sub, err := GroupByMany(groups[i].Records, dims[1:], opts...)
		if err != nil {
			return nil, err
		}
		groups[i].SubGroups = sub
	}
	return groups, nil
}

// Select returns the records of the groups whose category satisfies keep.
// It is how callers assemble composite groups such as "all extreme BMI
// categories" without touching category strings.
func Select(groups []Group, keep func(student.Category) bool) []student.Record {
	var out []student.Record
	for _, g := range groups {
		if keep(g.Key.Category) {
			out = append(out, g.Records...)
		}
	}
	return out
}

// Find returns the group holding c, or an empty group keyed by c when the
// category had no records.
func Find(groups []Group, c student.Category) Group {
	for _, g := range groups {
		if g.Key.Category == c {
			return g
		}
	}
	return Group{Key: GroupKey{Dimension: c.Dimension(), Category: c}}
}
