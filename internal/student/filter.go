package student

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter is the upstream selection the presentation layer applies before
// handing records to the analysis layer. A nil criterion matches everything.
type Filter struct {
	Sex   *Sex
	Class *ClassGrade
	Age   *int
	Sport *bool
}

// ParseFilter builds a Filter from flag values; "" and "all" leave a
// criterion unset.
func ParseFilter(sex, class, age, sport string) (Filter, error) {
	var f Filter
	if !isAll(sex) {
		v, err := ParseSex(sex)
		if err != nil {
			return Filter{}, err
		}
		f.Sex = &v
	}
	if !isAll(class) {
		v, err := ParseClassGrade(class)
		if err != nil {
			return Filter{}, err
		}
		f.Class = &v
	}
	if !isAll(age) {
		v, err := strconv.Atoi(strings.TrimSpace(age))
		if err != nil || v < MinAge || v > MaxAge {
			return Filter{}, fmt.Errorf("%w: age %q (want %d..%d)", ErrUnknownCategory, age, MinAge, MaxAge)
		}
		f.Age = &v
	}
	if !isAll(sport) {
		v, err := ParseSport(sport)
		if err != nil {
			return Filter{}, err
		}
		f.Sport = &v
	}
	return f, nil
}

func isAll(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || s == "all"
}

// IsEmpty reports whether the filter matches every record.
func (f Filter) IsEmpty() bool {
	return f.Sex == nil && f.Class == nil && f.Age == nil && f.Sport == nil
}

// Match reports whether r satisfies every set criterion.
func (f Filter) Match(r Record) bool {
	if f.Sex != nil && r.Sex != *f.Sex {
		return false
	}
	if f.Class != nil && r.Class != *f.Class {
		return false
	}
	if f.Age != nil && r.Age != *f.Age {
		return false
	}
	if f.Sport != nil && r.PlaysSport != *f.Sport {
		return false
	}
	return true
}

// Apply returns the matching records in input order. The input is not modified.
func (f Filter) Apply(records []Record) []Record {
	if f.IsEmpty() {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Labels describes the active criteria, e.g. ["sex=female", "sport=yes"].
func (f Filter) Labels() []string {
	var out []string
	if f.Sex != nil {
		out = append(out, "sex="+f.Sex.String())
	}
	if f.Class != nil {
		out = append(out, "class="+f.Class.String())
	}
	if f.Age != nil {
		out = append(out, "age="+strconv.Itoa(*f.Age))
	}
	if f.Sport != nil {
		if *f.Sport {
			out = append(out, "sport=yes")
		} else {
			out = append(out, "sport=no")
		}
	}
	return out
}
