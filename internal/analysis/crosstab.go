package analysis

import (
	"fmt"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// CrossTab counts records over two dimensions. Rows are the non-empty
// categories of Rows; every row lists all categories of Cols so stacked
// series line up.
type CrossTab struct {
	Rows    student.Dimension  `json:"rows" yaml:"rows"`
	Cols    student.Dimension  `json:"cols" yaml:"cols"`
	Columns []student.Category `json:"columns" yaml:"columns"`
	Lines   []CrossRow         `json:"lines" yaml:"lines"`
}

// CrossRow is one row category with its per-column counts.
type CrossRow struct {
	Key   GroupKey    `json:"key" yaml:"key"`
	Total int         `json:"total" yaml:"total"`
	Cells []CrossCell `json:"cells" yaml:"cells"`
}

// CrossCell is a count with its share of the row total, in percent.
type CrossCell struct {
	Category student.Category `json:"category" yaml:"category"`
	Count    int              `json:"count" yaml:"count"`
	Share    Value            `json:"share" yaml:"share"`
}

// CrossTabulate builds the rows × cols contingency table, e.g. intelligence
// level within each BMI category.
func CrossTabulate(records []student.Record, rows, cols student.Dimension) (*CrossTab, error) {
	if rows == cols {
		return nil, fmt.Errorf("cross-tabulate %s by itself", rows)
	}
	groups, err := GroupByMany(records, []student.Dimension{rows, cols}, WithPadding())
	if err != nil {
		return nil, err
	}
	ct := &CrossTab{Rows: rows, Cols: cols, Columns: cols.Categories()}
	for _, g := range groups {
		if g.Len() == 0 {
			continue
		}
		row := CrossRow{Key: g.Key, Total: g.Len(), Cells: make([]CrossCell, len(g.SubGroups))}
		for i, sub := range g.SubGroups {
			row.Cells[i] = CrossCell{
				Category: sub.Key.Category,
				Count:    sub.Len(),
				Share:    Some(float64(sub.Len()) * 100 / float64(g.Len())),
			}
		}
		ct.Lines = append(ct.Lines, row)
	}
	return ct, nil
}

// DefaultCrossTabs are the pairings the dashboard charts.
var DefaultCrossTabs = [][2]student.Dimension{
	{student.DimBMICategory, student.DimIntelligenceLevel},
	{student.DimBMICategory, student.DimSport},
	{student.DimBMICategory, student.DimSex},
	{student.DimClassGrade, student.DimIntelligenceLevel},
	{student.DimIntelligenceLevel, student.DimSport},
}
