// Package dataset loads survey records from JSON, YAML, CSV/TSV and XLSX
// exports and validates them before they reach the analysis layer.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

// Loader decodes one file format into records.
type Loader interface {
	CanLoad(filename string) bool
	Load(content []byte) ([]student.Record, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(jsonLoader{})
	Register(yamlLoader{})
	Register(csvLoader{ext: ".csv"})
	Register(csvLoader{ext: ".tsv", comma: '\t'})
	Register(xlsxLoader{})
}

// ErrUnsupported indicates a file extension no loader handles.
var ErrUnsupported = errors.New("unsupported dataset format")

// LoadFile picks a loader by file name, decodes the file and validates every
// record. Decoding and validation problems come back as a
// *student.ValidationError.
func LoadFile(path string) ([]student.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		records, err := l.Load(data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		if err := student.Validate(records); err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		slog.Debug("dataset loaded", "component", "dataset", "path", path, "records", len(records))
		return records, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
}

// Extensions lists the file extensions LoadFile understands.
func Extensions() []string {
	return []string{".json", ".yaml", ".yml", ".csv", ".tsv", ".xlsx"}
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
