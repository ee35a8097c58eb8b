// Package render formats analysis results for people and machines. It is the
// only place numbers are rounded or labelled.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/cohort-cli/internal/analysis"
)

// Format selects an output encoding.
type Format string

const (
	Table    Format = "table"
	Markdown Format = "markdown"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// ParseFormat accepts the format names plus "md" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return Table, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, markdown, json or yaml)", s)
}

// NoData is shown in place of a statistic that does not exist.
const NoData = "—"

// Round1 rounds half away from zero to one decimal.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// Num formats a statistic to one decimal.
func Num(v analysis.Value) string {
	x, ok := v.Get()
	if !ok {
		return NoData
	}
	return fmt.Sprintf("%.1f", Round1(x))
}

// Pct formats a percentage to one decimal with a percent sign.
func Pct(v analysis.Value) string {
	x, ok := v.Get()
	if !ok {
		return NoData
	}
	return fmt.Sprintf("%.1f%%", Round1(x))
}

// Signed formats a difference with an explicit sign.
func Signed(v analysis.Value) string {
	x, ok := v.Get()
	if !ok {
		return NoData
	}
	return fmt.Sprintf("%+.1f", Round1(x))
}

// Coef formats a correlation coefficient to three decimals.
func Coef(c analysis.Coefficient) string {
	if !c.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.3f", c.R)
}

// Strength describes a defined coefficient, e.g. "weak negative".
func Strength(c analysis.Coefficient) string {
	if !c.Defined {
		return "undefined"
	}
	s, d := c.Classify()
	if s == analysis.Negligible {
		return s.String()
	}
	return s.String() + " " + d.String()
}
