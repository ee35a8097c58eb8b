package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

type csvLoader struct {
	ext   string
	comma rune // 0 sniffs ',' or ';' from the header line
}

func (l csvLoader) CanLoad(filename string) bool { return hasExt(filename, l.ext) }

func (l csvLoader) Load(content []byte) ([]student.Record, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = l.comma
	if r.Comma == 0 {
		r.Comma = sniffDelimiter(content)
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

// sniffDelimiter prefers ';' when the header has more semicolons than commas,
// the usual layout of exports from comma-decimal locales.
func sniffDelimiter(content []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(content))
	if !sc.Scan() {
		return ','
	}
	line := sc.Text()
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool { return hasExt(filename, ".xlsx") }

// Load reads the first worksheet that has any rows.
func (xlsxLoader) Load(content []byte) ([]student.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		return fromRows(rows)
	}
	return nil, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// fromRows treats the first non-blank row as the header. Blank rows are
// skipped; problems are reported against the record's position, not the
// file line.
func fromRows(rows [][]string) ([]student.Record, error) {
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, nil
	}
	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}
	var b recordBuilder
	records := make([]student.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		records = append(records, b.build(len(records), h.cells(row)))
	}
	if err := b.err(); err != nil {
		return nil, err
	}
	return records, nil
}
