package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/cohort-cli/internal/utils"
)

// Write emits v in format f. JSON and YAML encode v itself at full precision;
// table and markdown draw the sections.
func Write(w io.Writer, f Format, v any, sections ...Section) error {
	switch f {
	case JSON:
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case Markdown:
		_, err := io.WriteString(w, MarkdownString(sections))
		return err
	case Table:
		for i, s := range sections {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			renderTable(w, s)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}

func renderTable(w io.Writer, s Section) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(s.Title)
	t.AppendHeader(toRow(s.Header))
	for _, r := range s.Rows {
		t.AppendRow(toRow(r))
	}
	if len(s.Rows) == 0 {
		t.AppendRow(table.Row{"(no data)"})
	}
	t.Render()
	for _, n := range s.Notes {
		_, _ = fmt.Fprintf(w, "  • %s\n", n)
	}
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// MarkdownString renders sections as bracketed headings followed by a pipe
// table and bullet notes.
func MarkdownString(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", s.Title)
		if len(s.Rows) == 0 {
			b.WriteString("(no data)\n")
		} else {
			writeMarkdownRow(&b, s.Header)
			sep := make([]string, len(s.Header))
			for j := range sep {
				sep[j] = "---"
			}
			writeMarkdownRow(&b, sep)
			for _, r := range s.Rows {
				writeMarkdownRow(&b, r)
			}
		}
		for _, n := range s.Notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(safeVal(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

func upper(s string) string { return strings.ToUpper(strings.ReplaceAll(s, "_", " ")) }
