package analysis

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// ReportOptions controls BuildReport.
type ReportOptions struct {
	// ID identifies the run; callers typically pass a fresh UUID.
	ID string
	// Name labels the report, usually the dataset file name.
	Name string
	// Filters describes the upstream selection, for display only.
	Filters []string
	// Parallel bounds how many sections (and group distributions) are
	// computed at once; values below 2 compute sequentially.
	Parallel int
}

// AggregateSection is one field aggregated along one dimension.
type AggregateSection struct {
	Dimension student.Dimension `json:"dimension" yaml:"dimension"`
	Field     student.Field     `json:"field" yaml:"field"`
	Results   []AggregateResult `json:"results" yaml:"results"`
}

// SplitSection is one field aggregated along one dimension and split by a
// second one.
type SplitSection struct {
	Dimension student.Dimension `json:"dimension" yaml:"dimension"`
	Split     student.Dimension `json:"split" yaml:"split"`
	Field     student.Field     `json:"field" yaml:"field"`
	Results   []SplitResult     `json:"results" yaml:"results"`
}

// Report bundles every view of one collection.
type Report struct {
	ID            string               `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string               `json:"name" yaml:"name"`
	Filters       []string             `json:"filters,omitempty" yaml:"filters,omitempty"`
	Total         int                  `json:"total" yaml:"total"`
	Overview      OverviewResult       `json:"overview" yaml:"overview"`
	Aggregates    []AggregateSection   `json:"aggregates" yaml:"aggregates"`
	Splits        []SplitSection       `json:"splits" yaml:"splits"`
	Distributions []DistributionResult `json:"distributions" yaml:"distributions"`
	Correlations  *Matrix              `json:"correlations" yaml:"correlations"`
	CrossTabs     []*CrossTab          `json:"cross_tabs" yaml:"cross_tabs"`
	Profile       []ProfileRow         `json:"profile" yaml:"profile"`
	Insights      Insights             `json:"insights" yaml:"insights"`
}

// DefaultAggregates are the dimension/field pairs the dashboard charts.
var DefaultAggregates = []struct {
	Dimension student.Dimension
	Field     student.Field
}{
	{student.DimBMICategory, student.FieldIntelligenceScore},
	{student.DimSex, student.FieldIntelligenceScore},
	{student.DimAge, student.FieldIntelligenceScore},
	{student.DimClassGrade, student.FieldIntelligenceScore},
	{student.DimSport, student.FieldIntelligenceScore},
	{student.DimAge, student.FieldBMI},
	{student.DimSex, student.FieldBMI},
}

// DefaultSplits are the boys/girls views: score and BMI over age, and score
// per BMI category.
var DefaultSplits = []struct {
	Dimension student.Dimension
	Split     student.Dimension
	Field     student.Field
}{
	{student.DimAge, student.DimSex, student.FieldIntelligenceScore},
	{student.DimAge, student.DimSex, student.FieldBMI},
	{student.DimBMICategory, student.DimSex, student.FieldIntelligenceScore},
}

// BuildReport computes every section over records. Sections are independent
// and may run concurrently; the result does not depend on opt.Parallel.
func BuildReport(records []student.Record, opt ReportOptions) (*Report, error) {
	log := slog.With("component", "report", "id", opt.ID)
	start := time.Now()
	rep := &Report{
		ID:         opt.ID,
		Name:       opt.Name,
		Filters:    opt.Filters,
		Total:      len(records),
		Aggregates: make([]AggregateSection, len(DefaultAggregates)),
		Splits:     make([]SplitSection, len(DefaultSplits)),
		CrossTabs:  make([]*CrossTab, len(DefaultCrossTabs)),
	}
	var eg errgroup.Group
	limit := opt.Parallel
	if limit < 1 {
		limit = 1
	}
	eg.SetLimit(limit)

	eg.Go(func() (err error) {
		rep.Overview, err = Overview(records)
		return wrap("overview", err)
	})
	for i, a := range DefaultAggregates {
		i, a := i, a // per-iteration copy (pre-Go 1.22 loop semantics)
		eg.Go(func() error {
			res, err := AggregateBy(records, a.Dimension, a.Field)
			if err != nil {
				return wrap(fmt.Sprintf("aggregate %s by %s", a.Field, a.Dimension), err)
			}
			rep.Aggregates[i] = AggregateSection{Dimension: a.Dimension, Field: a.Field, Results: res}
			return nil
		})
	}
	for i, sp := range DefaultSplits {
		i, sp := i, sp // per-iteration copy (pre-Go 1.22 loop semantics)
		eg.Go(func() error {
			res, err := AggregateSplit(records, sp.Dimension, sp.Split, sp.Field)
			if err != nil {
				return wrap(fmt.Sprintf("aggregate %s by %s and %s", sp.Field, sp.Dimension, sp.Split), err)
			}
			rep.Splits[i] = SplitSection{Dimension: sp.Dimension, Split: sp.Split, Field: sp.Field, Results: res}
			return nil
		})
	}
	eg.Go(func() (err error) {
		rep.Distributions, err = DistributionBy(records, student.DimBMICategory, student.FieldIntelligenceScore, Parallel(opt.Parallel))
		return wrap("distribution", err)
	})
	eg.Go(func() (err error) {
		rep.Correlations, err = CorrelationMatrix(records, student.Fields())
		return wrap("correlations", err)
	})
	for i, pair := range DefaultCrossTabs {
		i, pair := i, pair // per-iteration copy (pre-Go 1.22 loop semantics)
		eg.Go(func() (err error) {
			rep.CrossTabs[i], err = CrossTabulate(records, pair[0], pair[1])
			return wrap(fmt.Sprintf("cross-tab %s x %s", pair[0], pair[1]), err)
		})
	}
	eg.Go(func() (err error) {
		rep.Profile, err = Profile(records, student.DimBMICategory)
		return wrap("profile", err)
	})
	eg.Go(func() (err error) {
		rep.Insights, err = Synthesize(records)
		return wrap("insights", err)
	})
	if err := eg.Wait(); err != nil {
		log.Debug("report failed", "error", err)
		return nil, err
	}
	log.Debug("report built", "records", len(records), "parallel", limit, "elapsed", time.Since(start))
	return rep, nil
}

func wrap(section string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", section, err)
}
