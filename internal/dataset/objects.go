package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// Object documents may be a bare array of records or an object wrapping one
// under any of these keys.
var wrapperKeys = []string{"students", "records", "data"}

type jsonLoader struct{}

func (jsonLoader) CanLoad(filename string) bool { return hasExt(filename, ".json") }

func (jsonLoader) Load(content []byte) ([]student.Record, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return fromObjects(doc)
}

type yamlLoader struct{}

func (yamlLoader) CanLoad(filename string) bool { return hasExt(filename, ".yaml", ".yml") }

func (yamlLoader) Load(content []byte) ([]student.Record, error) {
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return fromObjects(doc)
}

func fromObjects(doc any) ([]student.Record, error) {
	if doc == nil {
		return nil, nil
	}
	items, ok := doc.([]any)
	if !ok {
		m, isMap := doc.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("expected a list of records, got %T", doc)
		}
		for _, k := range wrapperKeys {
			if items, ok = m[k].([]any); ok {
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("expected a list of records or one of %v", wrapperKeys)
		}
	}
	var b recordBuilder
	records := make([]student.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
		}
		cells := make(map[column]string, len(obj))
		for k, v := range obj {
			c, known := lookupColumn(k)
			if !known {
				continue
			}
			if s, ok := cellText(v); ok {
				cells[c] = s
			}
		}
		records = append(records, b.build(i, func(c column) (string, bool) {
			s, ok := cells[c]
			return s, ok
		}))
	}
	if err := b.err(); err != nil {
		return nil, err
	}
	return records, nil
}

// cellText renders a decoded scalar the way it would appear in a CSV cell.
func cellText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	}
	return fmt.Sprint(v), true
}
